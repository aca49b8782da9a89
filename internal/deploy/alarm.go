package deploy

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// StageMonitoring is the stage name for health alarm registration.
const StageMonitoring = "monitoring"

// Alarm parameters for the cluster health metric.
const (
	alarmMetricName    = "ClusterHealth"
	alarmNamespace     = "AWS/EKS"
	alarmPeriodSeconds = 300
	alarmEvalPeriods   = 1
	alarmThreshold     = 1.0
)

// AlarmStage registers a CloudWatch alarm on the cluster health metric.
// Registration is fire-and-forget: a failure here is logged and skipped,
// never failing a deployment whose cluster is already ACTIVE.
type AlarmStage struct{}

// Name implements the Stage interface.
func (s *AlarmStage) Name() string {
	return StageMonitoring
}

// Run implements the Stage interface.
func (s *AlarmStage) Run(ctx *Context) error {
	input := &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(ctx.Config.AlarmName()),
		MetricName:         aws.String(alarmMetricName),
		Namespace:          aws.String(alarmNamespace),
		Period:             aws.Int32(alarmPeriodSeconds),
		EvaluationPeriods:  aws.Int32(alarmEvalPeriods),
		Threshold:          aws.Float64(alarmThreshold),
		ComparisonOperator: cwtypes.ComparisonOperatorLessThanThreshold,
		Statistic:          cwtypes.StatisticAverage,
	}
	if ctx.Config.SNSTopicARN != "" {
		input.AlarmActions = []string{ctx.Config.SNSTopicARN}
	}

	if _, err := ctx.Clients.Monitoring.PutMetricAlarm(ctx, input); err != nil {
		ctx.Observer.Event(Event{
			Type:     EventAlarmSkipped,
			Stage:    StageMonitoring,
			Resource: ctx.Config.AlarmName(),
			Message:  "alarm registration failed, continuing without monitoring: " + err.Error(),
		})
		return nil
	}

	ctx.State.AlarmRegistered = true
	ctx.Observer.Event(Event{
		Type:     EventResourceCreated,
		Stage:    StageMonitoring,
		Resource: ctx.Config.AlarmName(),
		Message:  "health alarm registered",
	})
	return nil
}

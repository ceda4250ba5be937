package app

import (
	"context"

	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/services"

	"go.uber.org/zap"
)

type awsIntegrations struct {
	presigner services.Presigner
	events    services.EventPublisher
	metrics   services.MetricsRecorder
}

// newAWSIntegrations builds the S3 presigner, the SNS order-event publisher
// and the CloudWatch recorder for whichever of them is configured. A failure
// to load AWS config leaves all of them off.
func newAWSIntegrations(ctx context.Context, cfg *config.Config) awsIntegrations {
	var out awsIntegrations
	c := cfg.AWS
	if c.S3Bucket == "" && c.OrderEventsTopic == "" && !c.CloudWatchEnabled {
		return out
	}

	awsCfg, err := config.LoadAWSConfig(ctx, c)
	if err != nil {
		zap.L().Warn("AWS integrations disabled", zap.Error(err))
		return out
	}

	zap.L().Info("AWS Configuration",
		zap.String("region", c.Region),
		zap.String("endpoint", c.Endpoint),
		zap.Bool("s3", c.S3Bucket != ""),
		zap.Bool("sns", c.OrderEventsTopic != ""),
		zap.Bool("cloudwatch", c.CloudWatchEnabled),
	)

	if c.S3Bucket != "" {
		out.presigner = services.NewS3Presigner(awsCfg, c.S3Endpoint)
	}
	if c.OrderEventsTopic != "" {
		out.events = services.NewSNSOrderEvents(services.NewSNSClient(awsCfg, c.Endpoint), c.OrderEventsTopic)
	}
	if c.CloudWatchEnabled {
		out.metrics = services.NewMetricsClient(awsCfg, c.Endpoint, c.MetricsNamespace, true)
	}
	return out
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsqio/go-nsq"

	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/internal/pkg/retry"
)

// SMSGateway publishes SMS dispatch events to NSQ. A downstream worker
// owns the actual provider integration; this service only hands off.
type SMSGateway struct {
	producer *nsq.Producer
	topic    string
	retrier  *retry.Retrier
}

// NewSMSGateway creates a new SMS gateway connected to the NSQ daemon
func NewSMSGateway(cfg models.NSQConfig, zapLogger *logger.ZapLogger) (*SMSGateway, error) {
	config := nsq.NewConfig()
	config.DialTimeout = 5 * time.Second
	config.WriteTimeout = 5 * time.Second

	producer, err := nsq.NewProducer(cfg.Address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := producer.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	retrierCfg := retry.DefaultConfig()
	retrierCfg.MaxRetries = 2
	retrierCfg.MaxDelay = 2 * time.Second

	return &SMSGateway{
		producer: producer,
		topic:    cfg.SMSTopic,
		retrier:  retry.New(retrierCfg, zapLogger),
	}, nil
}

// SendSMS publishes a dispatch event for the given phone number,
// retrying transient publish failures with backoff.
func (g *SMSGateway) SendSMS(ctx context.Context, phoneNumber, body string) error {
	msg := models.SMSMessage{
		PhoneNumber: phoneNumber,
		Body:        body,
		RequestedAt: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS message: %w", err)
	}

	err = g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.producer.Publish(g.topic, payload)
	})
	if err != nil {
		return fmt.Errorf("failed to publish SMS message: %w", err)
	}

	logger.Debug("SMS dispatch event published",
		logger.String("phone_number", phoneNumber),
		logger.String("topic", g.topic))

	return nil
}

// Stop gracefully stops the underlying producer
func (g *SMSGateway) Stop() {
	g.producer.Stop()
}

package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers an email job. A nil error means the job was handed off
// successfully; what "handed off" means depends on the transport.
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}

// Publisher is the queue side used by QueueSender. *helpers.RabbitPublisher
// implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Transport sends an already rendered message. *Mailgun implements it.
type Transport interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// QueueSender publishes jobs for cmd/email_worker. A publish or confirm
// failure is reported to the caller.
type QueueSender struct {
	pub Publisher
}

func NewQueueSender(pub Publisher) *QueueSender {
	return &QueueSender{pub: pub}
}

func (s *QueueSender) Send(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	return s.pub.PublishJSON(ctx, job)
}

// DirectSender renders and sends inline.
type DirectSender struct {
	transport Transport
}

func NewDirectSender(t Transport) *DirectSender {
	return &DirectSender{transport: t}
}

func (s *DirectSender) Send(ctx context.Context, job EmailJob) error {
	subject, text, html, err := job.Render()
	if err != nil {
		return err
	}
	return s.transport.Send(ctx, job.To, subject, text, html)
}

// NoopSender is used when MAIL_SEND_ENABLED=false. It only logs the
// recipient and template; job data may contain secrets and is not logged.
type NoopSender struct {
	logger logrus.FieldLogger
}

func NewNoopSender(logger logrus.FieldLogger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(_ context.Context, job EmailJob) error {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Info("email sending disabled; job dropped")
	}
	return nil
}

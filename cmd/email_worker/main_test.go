package main

import (
	"context"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-blog-api/pkg/mailer"
)

type ackRecord struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecord) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *ackRecord) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *ackRecord) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type stubSender struct {
	err  error
	sent []mailer.EmailJob
}

func (s *stubSender) Send(_ context.Context, job mailer.EmailJob) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, job)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func deliver(t *testing.T, mg sender, body string, redelivered bool) *ackRecord {
	t.Helper()
	ack := &ackRecord{}
	msg := amqp.Delivery{Acknowledger: ack, Body: []byte(body), Redelivered: redelivered}
	handle(context.Background(), quietLogger(), mg, msg)
	return ack
}

const rawJob = `{"to":"a@example.com","subject":"hi","text":"hello"}`

func TestHandle_AcksSentMail(t *testing.T) {
	mg := &stubSender{}
	ack := deliver(t, mg, rawJob, false)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	if assert.Len(t, mg.sent, 1) {
		assert.Equal(t, "a@example.com", mg.sent[0].To)
	}
}

func TestHandle_DropsBadJobs(t *testing.T) {
	for name, body := range map[string]string{
		"not json":         `{"to":`,
		"unknown template": `{"to":"a@example.com","template":"does_not_exist"}`,
	} {
		t.Run(name, func(t *testing.T) {
			mg := &stubSender{}
			ack := deliver(t, mg, body, false)
			assert.True(t, ack.nacked)
			assert.False(t, ack.requeue)
			assert.False(t, ack.acked)
			assert.Empty(t, mg.sent)
		})
	}
}

func TestHandle_RequeuesSendFailureOnce(t *testing.T) {
	mg := &stubSender{err: errors.New("mailgun 503")}

	first := deliver(t, mg, rawJob, false)
	assert.True(t, first.nacked)
	assert.True(t, first.requeue)

	second := deliver(t, mg, rawJob, true)
	assert.True(t, second.nacked)
	assert.False(t, second.requeue, "a redelivered job is dropped")
}

package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rakasatria/folio/internal/mailer"
	"github.com/rakasatria/folio/internal/services"
)

// ContactNotifierPool consumes contact submissions from the redis
// stream and emails the site owner. Delivery is best-effort: a failed
// send is logged and acked, never retried, and never affects the
// submission that produced it.
type ContactNotifierPool struct {
	Redis      *redis.Client
	Mailer     mailer.Mailer
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *ContactNotifierPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Mailer == nil {
		return errors.New("ContactNotifierPool missing dependency: Redis/Mailer must be set")
	}
	if p.Stream == "" {
		p.Stream = services.ContactStream
	}
	if p.Group == "" {
		p.Group = "contact-notifiers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "n"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *ContactNotifierPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *ContactNotifierPool) handleMsg(msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	n := mailer.ContactNotification{
		Name:    getStr("name"),
		Email:   getStr("email"),
		Phone:   getStr("phone"),
		Subject: getStr("subject"),
		Message: getStr("message"),
	}
	if n.Name == "" && n.Email == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"contact_id": getStr("contact_id"),
	})

	if err := p.Mailer.SendContactNotification(n); err != nil {
		log.WithError(err).Warn("contact notification failed")
		return
	}
	log.Info("contact notification sent")
}

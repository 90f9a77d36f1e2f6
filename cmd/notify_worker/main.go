// notify_worker consumes match events and mails the shipowner that a
// charterer swiped on their vessel.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jb-laurans/dockitback/config"
	"github.com/jb-laurans/dockitback/pkg/notify"
)

type sender interface {
	Send(ctx context.Context, to, subject, text string) error
}

type msgAction int

const (
	actAck msgAction = iota
	actDrop
	actRetry
)

// handleEvent decides what to do with one delivery. A failed send is
// requeued once; if the redelivery fails too the message is dropped so
// a permanently undeliverable address cannot loop through Mailgun
// forever.
func handleEvent(ctx context.Context, mg sender, body []byte, redelivered bool) msgAction {
	var event notify.MatchEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("bad message: %v", err)
		return actDrop
	}
	if event.OwnerEmail == "" {
		log.Printf("match %d has no owner email, dropping", event.MatchID)
		return actDrop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mg.Send(c, event.OwnerEmail, event.Subject(), event.Text()); err != nil {
		if redelivered {
			log.Printf("send failed again for match %d, dropping: %v", event.MatchID, err)
			return actDrop
		}
		log.Printf("send failed for match %d, requeueing: %v", event.MatchID, err)
		return actRetry
	}
	return actAck
}

func main() {
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notify worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQMatchQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQMatchQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQMatchQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := notify.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			switch handleEvent(ctx, mg, msg.Body, msg.Redelivered) {
			case actAck:
				_ = msg.Ack(false)
			case actRetry:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
		close(done)
	}()

	log.Printf("notify worker listening on queue=%s", cfg.RabbitMQMatchQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

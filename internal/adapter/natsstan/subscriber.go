package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	stan "github.com/nats-io/stan.go"
	log "github.com/sirupsen/logrus"

	"github.com/example/wismo-service/internal/domain"
)

// changeEvent is the payload the warehouse pipeline publishes after it
// refreshes an order.
type changeEvent struct {
	OrderNumber string `json:"order_number"`
}

// Subscriber consumes warehouse change events from NATS Streaming and hands
// the affected order number to the handler (cache eviction). Durable queue
// subscription with manual acks, like the rest of our STAN consumers.
type Subscriber struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Durable   string
	Queue     string
}

func (s *Subscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, orderNumber string) error) error {
	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("wismo-svc-%d", time.Now().UnixNano())
	}
	queue := s.Queue
	if queue == "" {
		queue = "wismo-workers"
	}
	sc, err := stan.Connect(s.ClusterID, clientID, stan.NatsURL(s.URL))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		sc.Close()
	}()
	_, err = sc.QueueSubscribe(s.Subject, queue, func(m *stan.Msg) {
		var ev changeEvent
		if err := json.Unmarshal(m.Data, &ev); err != nil || ev.OrderNumber == "" {
			// redelivery cannot fix a malformed payload, ack and move on
			log.WithError(err).Warn("dropping invalid change event")
			_ = m.Ack()
			return
		}
		hCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := handler(hCtx, ev.OrderNumber); err != nil {
			// no ack, let the message redeliver
			log.WithError(err).WithField("order", ev.OrderNumber).Error("change event handler")
			return
		}
		if err := m.Ack(); err != nil {
			log.WithError(err).Error("ack failed")
		}
	}, stan.DurableName(s.Durable), stan.SetManualAckMode(), stan.AckWait(10*time.Second), stan.DeliverAllAvailable())
	return err
}

var _ domain.ChangeSubscriber = (*Subscriber)(nil)

// Dev tool: publish a warehouse change event so the running service evicts
// the order from its cache.
//
//	go run ./cmd/publisher 533212
package main

import (
	"encoding/json"
	"os"

	stan "github.com/nats-io/stan.go"
	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: publisher <order-number>")
	}
	clusterID := getenv("STAN_CLUSTER_ID", "wismo-cluster")
	clientID := getenv("STAN_PUB_ID", "wismo-publisher")
	natsURL := getenv("NATS_URL", "nats://localhost:4222")
	subject := getenv("STAN_SUBJECT", "warehouse.order-changes")

	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(natsURL))
	if err != nil {
		log.WithError(err).Fatal("stan connect")
	}
	defer sc.Close()

	b, err := json.Marshal(map[string]string{"order_number": os.Args[1]})
	if err != nil {
		log.WithError(err).Fatal("marshal")
	}
	if err := sc.Publish(subject, b); err != nil {
		log.WithError(err).Fatal("publish")
	}
	log.WithField("order", os.Args[1]).Info("published change event")
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

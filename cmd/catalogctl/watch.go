package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/segmentio/kafka-go"
	"github.com/urfave/cli/v2"

	"storefront/pkg/config"
	"storefront/pkg/events"
)

type watchedEvent struct {
	events.CatalogEvent
	EventID string `json:"eventId,omitempty"`
	Source  string `json:"source,omitempty"`
}

func watchCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "stream catalog change events from Kafka, one JSON line each",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "brokers", EnvVars: []string{config.EnvKafkaBrokers}, Required: true},
			&cli.StringFlag{Name: "topic", EnvVars: []string{config.EnvKafkaTopic}, Value: config.DefaultKafkaTopic},
			&cli.StringFlag{Name: "group", Usage: "consumer group; resumes where the group left off"},
			&cli.BoolFlag{Name: "from-beginning", Usage: "start at the oldest retained event instead of the newest (with --group, only when the group has no stored offset)"},
			&cli.StringFlag{Name: "entity", Usage: "only show category, product or review events"},
		},
		Action: func(c *cli.Context) error {
			startOffset := kafka.LastOffset
			if c.Bool("from-beginning") {
				startOffset = kafka.FirstOffset
			}

			var entities []events.Entity
			if entity := c.String("entity"); entity != "" {
				entities = append(entities, events.Entity(entity))
			}
			enc := json.NewEncoder(s.out)
			emit := func(_ context.Context, e events.CatalogEvent, meta events.Metadata) error {
				return enc.Encode(watchedEvent{CatalogEvent: e, EventID: meta.EventID, Source: meta.Source})
			}

			var brokers []string
			for _, b := range c.StringSlice("brokers") {
				if b = strings.TrimSpace(b); b != "" {
					brokers = append(brokers, b)
				}
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			sub, err := events.NewKafkaSubscriber(ctx, events.SubscriberConfig{
				Brokers:     brokers,
				Topic:       c.String("topic"),
				GroupID:     c.String("group"),
				StartOffset: startOffset,
			}, events.Chain(emit, events.WithLogging(s.log), events.WithEntities(entities...)), s.log)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			defer sub.Close()

			if err := sub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// Package possync ingests raw POS order events via Pub/Sub push. Delivery is
// at-least-once; ingestion is an idempotent upsert keyed by order number.
package possync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("possync")

func topicName() string {
	if v := strings.TrimSpace(os.Getenv("POS_ORDERS_TOPIC")); v != "" {
		return v
	}
	return "pos-orders"
}

// PublishOrderEvent pushes one order event onto the POS orders topic. Used by
// backfill tooling; the POS vendor publishes the live stream.
func PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	client, err := config.GetPubSubClient(ctx)
	if err != nil {
		return err
	}

	data, _ := json.Marshal(event)
	res := client.Topic(topicName()).Publish(ctx, &pubsub.Message{Data: data})
	_, err = res.Get(ctx)
	return err
}

// PubSubPushHandler accepts Pub/Sub push deliveries of POS order events.
// Malformed envelopes and payloads are acked and dropped so a poisoned
// message cannot loop forever; a store failure returns 500 so Pub/Sub
// redelivers.
func PubSubPushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			config.LogError(logger, "pubsub.go", "PubSubPushHandler", "ReadBody", nil, err)
			c.Status(http.StatusNoContent)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			config.LogError(logger, "pubsub.go", "PubSubPushHandler", "UnmarshalEnvelope", string(body), err)
			c.Status(http.StatusNoContent)
			return
		}

		var event OrderEvent
		if err := json.Unmarshal(envelope.Message.Data, &event); err != nil {
			config.LogError(logger, "pubsub.go", "PubSubPushHandler", "UnmarshalEvent", string(envelope.Message.Data), err)
			c.Status(http.StatusNoContent)
			return
		}

		order, err := orderFromEvent(event)
		if err != nil {
			config.LogError(logger, "pubsub.go", "PubSubPushHandler", "InvalidEvent", event, err)
			c.Status(http.StatusNoContent)
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "possync.UpsertPosOrder")
		defer span.End()

		db := config.GetDB()
		if err := models.UpsertPosOrder(db.WithContext(ctx), order); err != nil {
			config.LogError(logger, "pubsub.go", "PubSubPushHandler", "UpsertPosOrder", order.OrderNumber, err)
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func orderFromEvent(event OrderEvent) (*models.PosOrder, error) {
	if event.OrderNumber == "" || event.OutletId == "" {
		return nil, utils.ValidationError("Validation", "order_number and outlet_id are required")
	}

	orderDate, err := utils.ParseDate("order_date", event.OrderDate)
	if err != nil {
		return nil, err
	}
	gross, err := utils.ParseDecimal(event.GrossAmount)
	if err != nil {
		return nil, err
	}
	discount := event.DiscountAmount
	if discount == "" {
		discount = "0"
	}
	disc, err := utils.ParseDecimal(discount)
	if err != nil {
		return nil, err
	}

	return &models.PosOrder{
		ID:             uuid.NewString(),
		OutletId:       event.OutletId,
		OrderNumber:    event.OrderNumber,
		OrderType:      event.OrderType,
		PaymentMethod:  event.PaymentMethod,
		OrderDate:      orderDate,
		GrossAmount:    utils.RoundMoney(gross),
		DiscountAmount: utils.RoundMoney(disc),
		Status:         event.Status,
	}, nil
}

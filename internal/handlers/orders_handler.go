package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/orderhub/go-order-service/internal/aws"
	"github.com/orderhub/go-order-service/internal/orders"
	"github.com/orderhub/go-order-service/internal/validation"
)

// HandlerConfig groups dependencies for the orders handler.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	OrdersTable    string
	QueueURL       string
}

// RegisterOrdersRoutes registers routes for the order API.
//
// Create accepts the external submission shape and runs it through the
// mapper; update accepts canonical field names directly and bypasses the
// mapper. That asymmetry is part of the external contract.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	logger := log.WithField("component", "api")

	r.POST("/order", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		order, err := orders.MapCreateRequest(req)
		if err != nil {
			var me *orders.MappingError
			if errors.As(err, &me) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_order_payload", "field": me.Field, "msg": me.Reason})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mapping_failed", "detail": err.Error()})
			return
		}

		created, err := store.Create(ctx, order)
		if err != nil {
			if errors.Is(err, orders.ErrDuplicateOrder) {
				c.JSON(http.StatusConflict, gin.H{"error": "order with this orderId already exists"})
				return
			}
			logger.WithField("order_id", order.OrderID).WithError(err).Error("create order failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order", "detail": err.Error()})
			return
		}

		// Best-effort notification; the order is already durable, so a
		// failed enqueue is logged but does not fail the request.
		ev := aws.OrderEvent{
			Event:         aws.EventOrderCreated,
			OrderID:       created.OrderID,
			CorrelationID: requestID(c),
		}
		if err := publisher.PublishOrderEvent(ctx, ev); err != nil {
			logger.WithField("order_id", created.OrderID).WithError(err).Warn("failed to publish order_created event")
		}

		c.JSON(http.StatusCreated, gin.H{"message": "order created", "data": created})
	})

	r.GET("/order/list", func(c *gin.Context) {
		ctx := c.Request.Context()

		all, err := store.List(ctx)
		if err != nil {
			logger.WithError(err).Error("list orders failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, all)
	})

	r.GET("/order/:orderId", func(c *gin.Context) {
		ctx := c.Request.Context()
		orderID := c.Param("orderId")

		order, err := store.Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.WithField("order_id", orderID).WithError(err).Error("get order failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": order})
	})

	r.PUT("/order/:orderId", func(c *gin.Context) {
		ctx := c.Request.Context()
		orderID := c.Param("orderId")

		var req validation.UpdateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		updated, err := store.Update(ctx, orderID, toOrderPatch(req))
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found for update"})
				return
			}
			logger.WithField("order_id", orderID).WithError(err).Error("update order failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": updated})
	})

	r.DELETE("/order/:orderId", func(c *gin.Context) {
		ctx := c.Request.Context()
		orderID := c.Param("orderId")

		if err := store.Delete(ctx, orderID); err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found for deletion"})
				return
			}
			logger.WithField("order_id", orderID).WithError(err).Error("delete order failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order", "detail": err.Error()})
			return
		}

		ev := aws.OrderEvent{
			Event:         aws.EventOrderDeleted,
			OrderID:       orderID,
			CorrelationID: requestID(c),
		}
		if err := publisher.PublishOrderEvent(ctx, ev); err != nil {
			logger.WithField("order_id", orderID).WithError(err).Warn("failed to publish order_deleted event")
		}

		c.Status(http.StatusNoContent)
	})
}

func toOrderPatch(req validation.UpdateOrderRequest) orders.OrderPatch {
	patch := orders.OrderPatch{
		Value:        req.Value,
		CreationDate: req.CreationDate,
	}
	if req.Items != nil {
		items := make([]orders.Item, 0, len(*req.Items))
		for _, it := range *req.Items {
			items = append(items, orders.Item{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		patch.Items = &items
	}
	return patch
}

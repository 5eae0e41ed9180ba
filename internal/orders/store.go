package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/orderhub/go-order-service/internal/aws"
)

var (
	// ErrDuplicateOrder signals a create against an orderId that already exists.
	ErrDuplicateOrder = errors.New("order with this orderId already exists")
	// ErrOrderNotFound signals a get/update/delete against an absent orderId.
	ErrOrderNotFound = errors.New("order not found")
)

// Store encapsulates operations on the orders table. Uniqueness of orderId is
// enforced by the store itself (conditional writes on the partition key), so
// callers never pre-check before inserting.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new order. The write carries
// attribute_not_exists(orderId), so a concurrent duplicate loses atomically
// at the store layer and surfaces as ErrDuplicateOrder with no state change.
func (s *Store) Create(ctx context.Context, order Order) (*Order, error) {
	now := s.nowFunc().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Items == nil {
		order.Items = []Item{}
	}

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(orderId)"),
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrDuplicateOrder
		}
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &order, nil
}

// Get fetches an order by orderId. Returns ErrOrderNotFound when absent.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       orderKey(orderID),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrOrderNotFound
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// List returns every persisted order. The sequence comes back in scan order,
// which is store-defined and not stable across calls.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	orders := []Order{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		var page []Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		orders = append(orders, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return orders, nil
}

// Update applies a partial patch onto an existing order and returns the
// post-update document. Update never creates: the write is guarded with
// attribute_exists(orderId) and an absent order surfaces as ErrOrderNotFound.
func (s *Store) Update(ctx context.Context, orderID string, patch OrderPatch) (*Order, error) {
	now := s.nowFunc().UTC()

	names := map[string]string{"#updatedAt": "updatedAt"}
	updatedAt, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("marshal updatedAt: %w", err)
	}
	values := map[string]types.AttributeValue{":updatedAt": updatedAt}
	sets := []string{"#updatedAt = :updatedAt"}

	// "value" is a DynamoDB reserved word, so every attribute goes through
	// an expression name.
	if patch.Value != nil {
		av, err := attributevalue.Marshal(*patch.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		names["#value"] = "value"
		values[":value"] = av
		sets = append(sets, "#value = :value")
	}
	if patch.CreationDate != nil {
		av, err := attributevalue.Marshal(patch.CreationDate.UTC())
		if err != nil {
			return nil, fmt.Errorf("marshal creationDate: %w", err)
		}
		names["#creationDate"] = "creationDate"
		values[":creationDate"] = av
		sets = append(sets, "#creationDate = :creationDate")
	}
	if patch.Items != nil {
		items := *patch.Items
		if items == nil {
			items = []Item{}
		}
		av, err := attributevalue.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("marshal items: %w", err)
		}
		names["#items"] = "items"
		values[":items"] = av
		sets = append(sets, "#items = :items")
	}

	updateExpr := "SET " + strings.Join(sets, ", ")
	input := &dyn.UpdateItemInput{
		TableName:                 &s.tableName,
		Key:                       orderKey(orderID),
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(orderId)"),
		ReturnValues:              types.ReturnValueAllNew,
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	var o Order
	if err := attributevalue.UnmarshalMap(out.Attributes, &o); err != nil {
		return nil, fmt.Errorf("unmarshal updated order: %w", err)
	}
	return &o, nil
}

// Delete removes an order permanently. ErrOrderNotFound when absent.
func (s *Store) Delete(ctx context.Context, orderID string) error {
	input := &dyn.DeleteItemInput{
		TableName:           &s.tableName,
		Key:                 orderKey(orderID),
		ConditionExpression: awsString("attribute_exists(orderId)"),
	}
	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func orderKey(orderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"orderId": &types.AttributeValueMemberS{Value: orderID},
	}
}

// isConditionalCheckFailed detects a failed conditional write either as the
// typed exception or by smithy error code, depending on how the SDK surfaced it.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }

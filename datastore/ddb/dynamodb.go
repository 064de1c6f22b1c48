/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/registry"
)

// EntityTypeAttribute is the item attribute holding the entity-kind name.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client the datastore calls.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
// Key attributes come from the index map registered for T.
type DynamodbDataStore[T any] struct {
	client    API
	tableName string
	kind      string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewDynamoDBClient initializes a DynamoDB client. Empty credentials fall
// back to the default AWS credential chain.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(awsRegion),
	}
	if awsAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a DynamodbDataStore storing kind records in tableName.
func NewDynamodbDataStore[T any](client API, tableName, kind string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		kind:      kind,
	}
}

// marshalRecord converts a record into DynamoDB attributes through its JSON
// form, so strfmt and other TextMarshaler-style fields keep their string shape.
func marshalRecord(entity any) (map[string]types.AttributeValue, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("entity does not marshal to an object: %w", err)
	}
	return attributevalue.MarshalMap(generic)
}

func unmarshalRecord[T any](item map[string]types.AttributeValue) (*T, error) {
	var generic map[string]any
	if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	result := new(T)
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// expandMacros fills the index map templates with values from av.
// PK and SK are left out, they always come from the record key.
// An attribute whose template references a missing, empty or non-scalar
// value is omitted so the item stays out of that index.
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		if fieldName == "PK" || fieldName == "SK" {
			continue
		}
		complete := true
		value := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			// macro is something like "{Id}"
			v := scalarString(av[strings.Trim(macro, "{}")])
			if v == "" {
				complete = false
			}
			return v
		})
		if complete {
			res[fieldName] = value
		}
	}

	return res
}

func scalarString(v types.AttributeValue) string {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		return ""
	}
}

// expandStringKey replaces every macro in the index map with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func (d *DynamodbDataStore[T]) keyFor(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := registry.IndexMapFor[T]()
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expandStringKey(indexMap, key))
}

// GetOne retrieves a single item by record key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, errors.NewNotFoundError(d.kind, key)
	}

	return unmarshalRecord[T](out.Item)
}

// Put stores entity under key. PK and SK are expanded from key, the other
// index map attributes from the entity's fields. The kind name goes into
// EntityType.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, key string, entity T) error {
	if key == "" {
		return errors.NewValidationError("key", "must not be empty")
	}

	keyMap, err := d.keyFor(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Put: %w", err)
	}
	indexMap, err := registry.IndexMapFor[T]()
	if err != nil {
		return err
	}

	av, err := marshalRecord(entity)
	if err != nil {
		return err
	}

	for k, v := range expandMacros(indexMap, av) {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	for k, v := range keyMap {
		av[k] = v
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: d.kind}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item by record key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    aws.String(d.tableName),
		Key:          keyMap,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return errors.NewNotFoundError(d.kind, key)
	}
	return nil
}

package db

import (
	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// BatchGetItem refuses more keys than this.
const maxBatchKeys = 100

// Enabled reports whether a metadata table has been configured.
func Enabled() bool {
	return constants.GetDynamoEndpoint() != ""
}

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return dynamodb.New(session), nil
}

func toItem(m model.ChartMetadata) (map[string]*dynamodb.AttributeValue, error) {
	item, err := dynamodbattribute.MarshalMap(m)
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal metadata for %s", m.Filename)
	}
	return item, nil
}

func fromItem(item map[string]*dynamodb.AttributeValue) (model.ChartMetadata, error) {
	var m model.ChartMetadata
	err := dynamodbattribute.UnmarshalMap(item, &m)
	return m, errors.Wrap(err, "could not unmarshal metadata")
}

func PutChartMetadata(m model.ChartMetadata) error {
	item, err := toItem(m)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.GetDynamoTable()),
		Item:      item,
	})
	return errors.Wrap(err, "error from DynamoDB")
}

// GetChartMetadatas looks up the metadata for every chart file name given.
// Charts without metadata are missing from the result.
func GetChartMetadatas(filenames []string) (map[string]model.ChartMetadata, error) {
	if len(filenames) > maxBatchKeys {
		panic("Not supposed to pass in more than 100 filenames!")
	}

	res := make(map[string]model.ChartMetadata)
	if len(filenames) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}
	table := constants.GetDynamoTable()
	dbres, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}

	for _, v := range dbres.Responses[table] {
		m, err := fromItem(v)
		if err != nil {
			return nil, err
		}
		res[m.Filename] = m
	}
	return res, nil
}

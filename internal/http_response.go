package internal

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/xeipuuv/gojsonschema"
)

func Respond(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}
}

// JSON marshals v as the response body. A value that cannot be marshalled
// becomes a 500 carrying the marshalling error.
func JSON(statusCode int, v interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return Error(500, fmt.Errorf("encode response: %w", err))
	}
	return Respond(statusCode, string(body))
}

func Error(statusCode int, err error) events.APIGatewayProxyResponse {
	return Errors(statusCode, []string{err.Error()})
}

func Errors(statusCode int, messages []string) events.APIGatewayProxyResponse {
	responseBytes, _ := json.Marshal(map[string]interface{}{
		"errors": messages,
	})

	return Respond(statusCode, string(responseBytes))
}

func SchemaErrors(statusCode int, schemaErrors []gojsonschema.ResultError) events.APIGatewayProxyResponse {
	messages := []string{}
	for _, schemaError := range schemaErrors {
		messages = append(messages, fmt.Sprintf("%v", schemaError))
	}

	return Errors(statusCode, messages)
}

// Package main запускает выгрузку как AWS Lambda функцию.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"spotifyetl/internal/handler"
)

func main() {
	lambda.Start(handler.Handle)
}

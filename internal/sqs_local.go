package internal

import (
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/ory/dockertest"
)

func PortActive(network, address string, timeout int) error {
	for i := 0; i < timeout; i++ {
		s, err := net.Dial(network, address)
		if err == nil {
			s.Close()
			return nil
		}
		time.Sleep(time.Second)
	}
	return errors.New("port is not open")
}

// SQSStart runs an ElasticMQ container and returns an SQS client pointed at
// it. The test is skipped when no Docker daemon is reachable.
func SQSStart(t *testing.T) (func(), *sqs.SQS) {
	os.Setenv("AWS_REGION", "us-east-1")
	os.Setenv("AWS_ACCESS_KEY_ID", "x")
	os.Setenv("AWS_SECRET_ACCESS_KEY", "x")

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Could not connect to docker: %s\n", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository:   "softwaremill/elasticmq-native",
		Tag:          "latest",
		ExposedPorts: []string{"9324"},
	})
	if err != nil {
		t.Skipf("Could not start resource: %s\n", err)
	}

	closer := func() {
		if err := pool.Purge(resource); err != nil {
			t.Fatal(err)
		}
	}

	err = PortActive("tcp", resource.GetHostPort("9324/tcp"), 10)
	if err != nil {
		closer()
		t.Fatalf("Could not connect to resource: %s\n", resource.GetHostPort("9324/tcp"))
	}

	client := sqs.New(
		session.New(),
		&aws.Config{
			Endpoint: aws.String("http://" + resource.GetHostPort("9324/tcp")),
		},
	)

	return closer, client
}

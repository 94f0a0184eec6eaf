package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// CloudWatchEmitter ships events to a CloudWatch Logs stream as JSON
// lines. The stream is created lazily on first emit.
type CloudWatchEmitter struct {
	client        *cloudwatchlogs.Client
	group, stream string
	created       bool
}

func NewCloudWatchEmitter(client *cloudwatchlogs.Client, group, stream string) *CloudWatchEmitter {
	return &CloudWatchEmitter{client: client, group: group, stream: stream}
}

func (c *CloudWatchEmitter) Emit(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if err := c.ensureStream(ctx); err != nil {
		return err
	}

	payload, err := marshalEvent(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = c.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(c.group),
		LogStreamName: aws.String(c.stream),
		LogEvents: []types.InputLogEvent{
			{
				Message:   aws.String(string(payload)),
				Timestamp: aws.Int64(e.Timestamp.UnixMilli()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put log events: %w", err)
	}
	return nil
}

// marshalEvent renders the event as a JSON line with latency converted
// to integer milliseconds, matching the latency_ms field name.
func marshalEvent(e Event) ([]byte, error) {
	return json.Marshal(struct {
		Event
		Latency int64 `json:"latency_ms"`
	}{Event: e, Latency: e.Latency.Milliseconds()})
}

func (c *CloudWatchEmitter) ensureStream(ctx context.Context) error {
	if c.created {
		return nil
	}
	_, err := c.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(c.group),
		LogStreamName: aws.String(c.stream),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return fmt.Errorf("create log stream: %w", err)
		}
	}
	c.created = true
	return nil
}

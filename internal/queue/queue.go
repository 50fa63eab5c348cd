// Package queue carries import jobs between the API and the worker over
// RabbitMQ. Messages are just the job id; all job state lives in the
// import_jobs table.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type JobMessage struct {
	JobID string `json:"job_id"`
}

type Client struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func Dial(url, queueName string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot open channel: %w", err)
	}

	// Durable queue so pending imports survive a broker restart.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("cannot declare queue %q: %w", queueName, err)
	}

	return &Client{conn: conn, ch: ch, queue: queueName}, nil
}

func (c *Client) Close() {
	c.ch.Close()
	c.conn.Close()
}

func (c *Client) PublishJob(ctx context.Context, jobID string) error {
	body, err := json.Marshal(JobMessage{JobID: jobID})
	if err != nil {
		return err
	}
	return c.ch.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Consume delivers job ids to handle until the channel closes. A job that
// fails is not redelivered; its failure is recorded on the ImportJob row.
func (c *Client) Consume(handle func(jobID string)) error {
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("cannot start consumer: %w", err)
	}

	for d := range msgs {
		var msg JobMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			d.Nack(false, false)
			continue
		}
		handle(msg.JobID)
		d.Ack(false)
	}
	return nil
}

package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ScreeningTask is the queue message for one async screening job. The
// payload itself lives on the screening_jobs row; the message only carries
// the id.
type ScreeningTask struct {
	JobID string `json:"job_id"`
}

// Queue wraps the RabbitMQ connection used to hand screening jobs to the
// worker.
type Queue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewQueue connects to RabbitMQ and declares the durable screening queue.
// An unreachable broker is fatal at startup.
func NewQueue(url, name string) *Queue {
	conn, err := amqp.Dial(url)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		logrus.Fatalf("failed to open channel: %v", err)
	}

	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		logrus.Fatalf("failed to declare queue: %v", err)
	}

	logrus.WithField("queue", name).Info("connected to RabbitMQ and declared queue")

	return &Queue{conn: conn, channel: ch, queue: q}
}

// PublishTask enqueues one screening task.
func (r *Queue) PublishTask(task ScreeningTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// ConsumeTasks starts the worker consumer loop. Malformed messages are
// logged and skipped.
func (r *Queue) ConsumeTasks(handler func(ScreeningTask)) {
	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		logrus.Fatalf("failed to register consumer: %v", err)
	}

	go func() {
		for d := range msgs {
			var task ScreeningTask
			if err := json.Unmarshal(d.Body, &task); err != nil {
				logrus.Errorf("invalid task format: %v", err)
				continue
			}
			handler(task)
		}
	}()
}

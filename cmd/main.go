package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"candidate-screener/config"
	"candidate-screener/infrastructure"
	"candidate-screener/interfaces"
	"candidate-screener/pipeline"
)

func main() {
	cfg := config.Load()

	db := infrastructure.NewMySQLConnection(cfg.DatabaseDSN)
	store := infrastructure.NewStore(db)

	queue := infrastructure.NewQueue(cfg.RabbitMQURL, cfg.QueueName)

	evaluator := pipeline.New(store)
	extractor := infrastructure.NewTextExtractor()

	// Worker consumer: drains queued screening jobs end to end.
	queue.ConsumeTasks(func(task infrastructure.ScreeningTask) {
		runJob(store, evaluator, task.JobID)
	})

	router := gin.Default()
	interfaces.NewHTTPHandler(router, store, queue, evaluator, extractor)

	logrus.Infof("server listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatal(err)
	}
}

// runJob executes one queued screening job: load the stored payload, run
// the pipeline and record the resulting session (or the failure) on the
// job row.
func runJob(store *infrastructure.Store, evaluator *pipeline.Evaluator, jobID string) {
	ctx := context.Background()
	log := logrus.WithField("job_id", jobID)
	log.Info("worker processing screening job")

	job, err := store.GetJob(ctx, jobID)
	if err != nil {
		log.Errorf("failed to load job: %v", err)
		return
	}
	if job == nil {
		log.Error("job not found")
		return
	}

	if err := store.MarkJobProcessing(ctx, jobID); err != nil {
		log.Errorf("failed to mark job processing: %v", err)
		return
	}

	var payload pipeline.Payload
	if err := job.Payload.Decode(&payload); err != nil {
		log.Errorf("invalid job payload: %v", err)
		_ = store.FailJob(ctx, jobID, "invalid payload: "+err.Error())
		return
	}

	outcome, err := evaluator.Evaluate(ctx, payload)
	if err != nil {
		log.Errorf("evaluation failed: %v", err)
		_ = store.FailJob(ctx, jobID, err.Error())
		return
	}

	if err := store.CompleteJob(ctx, jobID, outcome.SessionID); err != nil {
		log.Errorf("failed to record job result: %v", err)
		return
	}

	log.WithField("session_id", outcome.SessionID).Info("worker finished screening job")
}

package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"assessment-runner/internal/common/errors"
	"assessment-runner/internal/common/logger"
	"assessment-runner/internal/common/metrics"
	"assessment-runner/internal/common/observability"
	"assessment-runner/internal/models"
	acquirewebhook "assessment-runner/internal/workers/assessment/acquire-webhook"
	submitsolution "assessment-runner/internal/workers/assessment/submit-solution"
)

// Acquirer exchanges an identity for a webhook grant.
type Acquirer interface {
	Execute(ctx context.Context, input *models.IdentityRequest) (*models.WebhookGrant, error)
}

// Submitter posts the final answer to a webhook.
type Submitter interface {
	Execute(ctx context.Context, input *submitsolution.Input) (*submitsolution.Output, error)
}

type Dependencies struct {
	Logger        logger.Logger
	Acquirer      Acquirer
	Submitter     Submitter
	Metrics       *metrics.Recorder
	Observability *observability.Observability
}

// Orchestrator runs the acquire-then-submit flow once per Run call.
type Orchestrator struct {
	config    Config
	logger    logger.Logger
	acquirer  Acquirer
	submitter Submitter
	metrics   *metrics.Recorder
	obs       *observability.Observability
}

func New(deps Dependencies, config Config) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if config.FinalQuery == "" {
		config.FinalQuery = DefaultFinalQuery
	}
	return &Orchestrator{
		config:    config,
		logger:    log,
		acquirer:  deps.Acquirer,
		submitter: deps.Submitter,
		metrics:   deps.Metrics,
		obs:       deps.Observability,
	}
}

// Run performs one acquisition and, when the grant is usable, exactly one
// submission. It never returns an error; the outcome is carried by RunResult.
func (o *Orchestrator) Run(ctx context.Context) *RunResult {
	start := time.Now()
	result := &RunResult{RunID: uuid.New().String()}
	log := o.logger.With(map[string]interface{}{"runId": result.RunID})

	ctx, span := o.obs.StartSpan(ctx, "assessment.run", attribute.String("run.id", result.RunID))
	defer func() {
		result.Duration = time.Since(start)
		outcome := result.Kind.Outcome()
		o.metrics.ObserveRun(outcome)
		o.obs.RecordRun(ctx, outcome, result.Duration)
		observability.EndSpan(span, result.Err)
	}()

	log.Info("starting webhook execution flow", nil)
	log.Info("generating webhook", map[string]interface{}{
		"regNo": o.config.Identity.RegNo,
	})

	identity := o.config.Identity
	var grant *models.WebhookGrant
	err := o.step(ctx, acquirewebhook.TaskType, func(ctx context.Context) error {
		var err error
		grant, err = o.acquirer.Execute(ctx, &identity)
		return err
	})
	if err != nil {
		result.Kind = KindAcquisitionFailed
		result.Err = err
		return result
	}

	if !grant.Usable() {
		missing := grant.Missing()
		log.Error("failed to retrieve webhook url, exiting", map[string]interface{}{
			"missing": missing,
		})
		result.Kind = KindGrantIncomplete
		result.Err = errors.NewGrantIncompleteError(missing)
		return result
	}

	result.WebhookURL = grant.URL()
	log.Info("received webhook url", map[string]interface{}{
		"webhookUrl": result.WebhookURL,
	})
	log.Info("received access token", map[string]interface{}{
		"accessToken": logger.Redacted,
	})

	input := &submitsolution.Input{
		WebhookURL:  grant.URL(),
		AccessToken: grant.Token(),
		Payload:     models.SubmissionPayload{FinalQuery: o.config.FinalQuery},
	}
	err = o.step(ctx, submitsolution.TaskType, func(ctx context.Context) error {
		out, err := o.submitter.Execute(ctx, input)
		if out != nil {
			result.StatusCode = out.StatusCode
		}
		return err
	})
	if err != nil {
		result.Kind = KindSubmissionFailed
		result.Err = err
		return result
	}

	result.Kind = KindSubmitted
	return result
}

func (o *Orchestrator) step(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := o.obs.StartSpan(ctx, "assessment.step."+name, attribute.String("step", name))
	begin := time.Now()
	err := fn(ctx)
	o.metrics.ObserveStep(name, time.Since(begin), err)
	observability.EndSpan(span, err)
	return err
}

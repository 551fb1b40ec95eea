package game

import (
	"context"

	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/logger"
)

// Presenter is the one-way presentation sink. The engine fires and forgets;
// nothing here may block or feed data back into a transition.
type Presenter interface {
	Log(category domain.LogCategory, msg string)
	Render(state *domain.RunState)
	ShowFeedback(f *domain.PendingFeedback)
	ShowArtifactChoice(offers []domain.Artifact)
	ShowGameOver(reason string)
	ShowVictory()
}

// slogPresenter writes presentation events to the structured log. The HTTP
// API is pull-based, so state changes surface through the state endpoint and
// this sink exists for operators.
type slogPresenter struct {
	ctx context.Context
}

// NewSlogPresenter creates a log-backed presenter.
func NewSlogPresenter(ctx context.Context) Presenter {
	return &slogPresenter{ctx: ctx}
}

func (p *slogPresenter) Log(category domain.LogCategory, msg string) {
	logger.FromContext(p.ctx).Info("narration", "category", string(category), "msg", msg)
}

func (p *slogPresenter) Render(state *domain.RunState) {
	logger.FromContext(p.ctx).Debug("render",
		"day", state.Day, "money", state.Money, "sanity", state.Sanity,
		"countertop", len(state.Countertop))
}

func (p *slogPresenter) ShowFeedback(f *domain.PendingFeedback) {
	logger.FromContext(p.ctx).Info("feedback", "rating", f.Rating, "comment", f.Comment)
}

func (p *slogPresenter) ShowArtifactChoice(offers []domain.Artifact) {
	names := make([]string, 0, len(offers))
	for _, a := range offers {
		names = append(names, a.Name)
	}
	logger.FromContext(p.ctx).Info("artifact choice", "offers", names)
}

func (p *slogPresenter) ShowGameOver(reason string) {
	logger.FromContext(p.ctx).Info("game over", "reason", reason)
}

func (p *slogPresenter) ShowVictory() {
	logger.FromContext(p.ctx).Info("victory")
}

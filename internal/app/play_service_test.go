package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizzz-service/internal/app"
	"quizzz-service/internal/domain"
	"quizzz-service/internal/infra/memory"
)

func seedPlayService(t *testing.T) (*app.PlayService, domain.Quiz) {
	t.Helper()
	quizzes := app.NewQuizService(memory.NewQuizStore())
	store := memory.NewQuizStore()
	quiz, err := quizzes.Create(context.Background(), app.QuizInput{
		Title: "Capitals",
		Questions: []app.QuestionInput{
			{Text: "Capital of France?", Options: []app.OptionInput{
				{Text: "Paris", Correct: true}, {Text: "Lyon"},
			}},
			{Text: "Capital of Italy?", Options: []app.OptionInput{
				{Text: "Milan"}, {Text: "Rome", Correct: true},
			}},
		},
	})
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	store.Seed(quiz)
	source := memory.NewQuizCache(store, time.Minute)
	return app.NewPlayService(memory.NewPlayStore(), source), quiz
}

func TestPlayFlowToCompletion(t *testing.T) {
	ctx := context.Background()
	service, quiz := seedPlayService(t)

	session, err := service.Start(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.QuizID != quiz.ID || session.CurrentIndex != 0 || session.Completed() {
		t.Fatalf("unexpected fresh session: %+v", session)
	}

	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	resp, session, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[0].ID)
	if err != nil {
		t.Fatalf("answer 1: %v", err)
	}
	if !resp.Correct {
		t.Fatalf("expected Paris to be correct")
	}
	if session.CurrentIndex != 1 || session.Completed() {
		t.Fatalf("unexpected session after first answer: %+v", session)
	}

	resp, session, err = service.Answer(ctx, session.ID, q2.ID, q2.Options[0].ID)
	if err != nil {
		t.Fatalf("answer 2: %v", err)
	}
	if resp.Correct {
		t.Fatalf("expected Milan to be incorrect")
	}
	if !session.Completed() || session.CompletedAt == nil {
		t.Fatalf("expected session to complete: %+v", session)
	}
	if got := session.Score(); got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}

	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[1].ID); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
}

func TestAnswerValidation(t *testing.T) {
	ctx := context.Background()
	service, quiz := seedPlayService(t)
	q1 := quiz.Questions[0]

	if _, _, err := service.Answer(ctx, "missing", q1.ID, q1.Options[0].ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	session, err := service.Start(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, _, err := service.Answer(ctx, session.ID, "nope", q1.Options[0].ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if _, _, err := service.Answer(ctx, session.ID, q1.ID, "nope"); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}

	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[0].ID); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[1].ID); !errors.Is(err, domain.ErrQuestionAnswered) {
		t.Fatalf("expected ErrQuestionAnswered, got %v", err)
	}
}

func TestPauseBlocksAnswers(t *testing.T) {
	ctx := context.Background()
	service, quiz := seedPlayService(t)
	q1 := quiz.Questions[0]

	session, err := service.Start(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	session, err = service.Pause(ctx, session.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !session.Paused {
		t.Fatalf("expected session to be paused")
	}
	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[0].ID); !errors.Is(err, domain.ErrSessionPaused) {
		t.Fatalf("expected ErrSessionPaused, got %v", err)
	}

	session, err = service.Resume(ctx, session.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if session.Paused {
		t.Fatalf("expected session to resume")
	}
	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[0].ID); err != nil {
		t.Fatalf("answer after resume: %v", err)
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	service, _ := seedPlayService(t)
	if _, err := service.Start(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubscribeReceivesProgress(t *testing.T) {
	ctx := context.Background()
	service, quiz := seedPlayService(t)
	q1 := quiz.Questions[0]

	session, err := service.Start(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	updates, cancel, err := service.Subscribe(ctx, session.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	initial := waitProgress(t, updates)
	if initial.Answered != 0 || initial.Total != 2 {
		t.Fatalf("unexpected initial progress: %+v", initial)
	}

	if _, _, err := service.Answer(ctx, session.ID, q1.ID, q1.Options[0].ID); err != nil {
		t.Fatalf("answer: %v", err)
	}
	update := waitProgress(t, updates)
	if update.Answered != 1 || update.Correct != 1 || update.CurrentIndex != 1 {
		t.Fatalf("unexpected progress after answer: %+v", update)
	}

	if _, err := service.Pause(ctx, session.ID); err != nil {
		t.Fatalf("pause: %v", err)
	}
	update = waitProgress(t, updates)
	if !update.Paused {
		t.Fatalf("expected paused progress: %+v", update)
	}
}

func waitProgress(t *testing.T, updates <-chan app.Progress) app.Progress {
	t.Helper()
	select {
	case p := <-updates:
		return p
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for progress update")
		return app.Progress{}
	}
}

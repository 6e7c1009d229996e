package quiz

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

var (
	_ corpusRepo       = &corpusRepoMock{}
	_ libraryRepo      = &libraryRepoMock{}
	_ translator       = &translatorMock{}
	_ progressRecorder = &progressRecorderMock{}
)

type corpusRepoMock struct {
	WordsByLevelFunc func(ctx context.Context, level string) ([]string, error)
	RandomWordsFunc  func(ctx context.Context, n int) ([]string, error)
	ExistsFunc       func(ctx context.Context, word string) (bool, error)
}

func (mock *corpusRepoMock) WordsByLevel(ctx context.Context, level string) ([]string, error) {
	if mock.WordsByLevelFunc == nil {
		panic("corpusRepoMock.WordsByLevelFunc: method is nil but corpusRepo.WordsByLevel was just called")
	}
	return mock.WordsByLevelFunc(ctx, level)
}

func (mock *corpusRepoMock) RandomWords(ctx context.Context, n int) ([]string, error) {
	if mock.RandomWordsFunc == nil {
		panic("corpusRepoMock.RandomWordsFunc: method is nil but corpusRepo.RandomWords was just called")
	}
	return mock.RandomWordsFunc(ctx, n)
}

func (mock *corpusRepoMock) Exists(ctx context.Context, word string) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("corpusRepoMock.ExistsFunc: method is nil but corpusRepo.Exists was just called")
	}
	return mock.ExistsFunc(ctx, word)
}

type libraryRepoMock struct {
	CountByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	ListFunc        func(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error)
	GetFunc         func(ctx context.Context, userID uuid.UUID, word string) (*domain.LibraryEntry, error)
}

func (mock *libraryRepoMock) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountByUserFunc == nil {
		panic("libraryRepoMock.CountByUserFunc: method is nil but libraryRepo.CountByUser was just called")
	}
	return mock.CountByUserFunc(ctx, userID)
}

func (mock *libraryRepoMock) List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error) {
	if mock.ListFunc == nil {
		panic("libraryRepoMock.ListFunc: method is nil but libraryRepo.List was just called")
	}
	return mock.ListFunc(ctx, userID, search, level)
}

func (mock *libraryRepoMock) Get(ctx context.Context, userID uuid.UUID, word string) (*domain.LibraryEntry, error) {
	if mock.GetFunc == nil {
		panic("libraryRepoMock.GetFunc: method is nil but libraryRepo.Get was just called")
	}
	return mock.GetFunc(ctx, userID, word)
}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, word string) (string, error)

	calls struct {
		Translate []struct {
			Word string
		}
	}
	lock sync.RWMutex
}

func (mock *translatorMock) Translate(ctx context.Context, word string) (string, error) {
	if mock.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc: method is nil but translator.Translate was just called")
	}
	callInfo := struct{ Word string }{Word: word}
	mock.lock.Lock()
	mock.calls.Translate = append(mock.calls.Translate, callInfo)
	mock.lock.Unlock()
	return mock.TranslateFunc(ctx, word)
}

func (mock *translatorMock) TranslateCalls() []struct{ Word string } {
	mock.lock.RLock()
	calls := mock.calls.Translate
	mock.lock.RUnlock()
	return calls
}

type progressRecorderMock struct {
	RecordAnswerFunc func(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error

	calls struct {
		RecordAnswer []struct {
			UserID  uuid.UUID
			Level   string
			Word    string
			Correct bool
		}
	}
	lock sync.RWMutex
}

func (mock *progressRecorderMock) RecordAnswer(ctx context.Context, userID uuid.UUID, level, word string, correct bool) error {
	if mock.RecordAnswerFunc == nil {
		panic("progressRecorderMock.RecordAnswerFunc: method is nil but progressRecorder.RecordAnswer was just called")
	}
	callInfo := struct {
		UserID  uuid.UUID
		Level   string
		Word    string
		Correct bool
	}{UserID: userID, Level: level, Word: word, Correct: correct}
	mock.lock.Lock()
	mock.calls.RecordAnswer = append(mock.calls.RecordAnswer, callInfo)
	mock.lock.Unlock()
	return mock.RecordAnswerFunc(ctx, userID, level, word, correct)
}

func (mock *progressRecorderMock) RecordAnswerCalls() []struct {
	UserID  uuid.UUID
	Level   string
	Word    string
	Correct bool
} {
	mock.lock.RLock()
	calls := mock.calls.RecordAnswer
	mock.lock.RUnlock()
	return calls
}

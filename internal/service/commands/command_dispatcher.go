package commands

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// Executor runs parsed commands against the ledger.
type Executor interface {
	Execute(ctx context.Context, cmd models.Command) models.Outcome
}

// Translator rewrites free-form text into command syntax.
type Translator interface {
	TranslateToCommand(ctx context.Context, input string) (string, error)
}

// Dispatcher turns raw chat text into an outcome.
type Dispatcher interface {
	HandleCommand(ctx context.Context, text, sender string) models.Outcome
}

// Service implements the Dispatcher interface.
type Service struct {
	engine     Executor
	translator Translator
	logger     *zap.Logger
}

// NewService constructs a command dispatcher. translator may be nil, in which case text
// that is not a command is rejected as is.
func NewService(engine Executor, translator Translator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:     engine,
		translator: translator,
		logger:     logger,
	}
}

// HandleCommand parses text and executes it. Text whose keyword is not a command gets a
// single translation attempt; the translated line must parse on its own.
func (s *Service) HandleCommand(ctx context.Context, text, sender string) models.Outcome {
	cmd, err := models.ParseCommand(text)
	if err == nil {
		s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender))
		return s.engine.Execute(ctx, cmd)
	}

	if !errors.Is(err, models.ErrUnknownCommand) || s.translator == nil || strings.TrimSpace(text) == "" {
		return models.Failed(err)
	}

	translated, ok := s.translate(ctx, text, sender)
	if !ok {
		return models.Failed(err)
	}

	s.logger.Info("free-form message translated",
		zap.String("sender", sender),
		zap.String("command", string(translated.Type)),
	)
	outcome := s.engine.Execute(ctx, translated)
	outcome.Message = "Understood: " + translated.Raw + "\n" + outcome.Message
	return outcome
}

func (s *Service) translate(ctx context.Context, text, sender string) (models.Command, bool) {
	line, err := s.translator.TranslateToCommand(ctx, text)
	if err != nil {
		s.logger.Debug("translation failed", zap.String("sender", sender), zap.Error(err))
		return models.Command{}, false
	}

	cmd, err := models.ParseCommand(line)
	if err != nil {
		s.logger.Debug("translated text is not a command",
			zap.String("sender", sender),
			zap.String("translation", line),
			zap.Error(err),
		)
		return models.Command{}, false
	}
	return cmd, true
}

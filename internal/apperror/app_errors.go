package apperror

import "errors"

var (
	ErrGameFinished           = errors.New("game is already finished")
	ErrGameIsNotStarted       = errors.New("game is not started")
	ErrGameNotFound           = errors.New("game not found")
	ErrResultNotFound         = errors.New("game result not found")
	ErrTeamNotFound           = errors.New("team not found")
	ErrInvalidLineup          = errors.New("invalid lineup")
	ErrIllegalPhaseTransition = errors.New("illegal phase transition")
	ErrInvalidInstruction     = errors.New("instruction is not valid in this situation")
	ErrMissingParticipant     = errors.New("participant not found")
	ErrWrongResolver          = errors.New("instruction must be handled by another resolver")
	ErrNotHumanTurn           = errors.New("no human decision is pending")
	ErrHistoryDisabled        = errors.New("match history is not configured")
)

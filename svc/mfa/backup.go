package mfa

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

// RedeemBackupCode consumes a single-use backup code of an active second factor.
func (s *Service) RedeemBackupCode(ctx context.Context, accountID uuid.UUID, code string) error {
	unlock, err := s.locks.LockContext(ctx, accountID.String())
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.load(ctx, accountID)
	if err != nil {
		return err
	}
	if StateOf(current) != StateActive {
		return ErrNotSetUp
	}

	idx := totp.MatchBackupCode(code, current.BackupCodeHashes)
	if idx < 0 {
		s.recordFailure(ctx, current)
		return ErrInvalidCode
	}

	next := current.Clone()
	next.BackupCodeHashes = append(next.BackupCodeHashes[:idx], next.BackupCodeHashes[idx+1:]...)
	next.FailedAttempts = 0
	next.UpdatedAt = s.now().UTC()

	if err := s.store.PutSettings(ctx, next); err != nil {
		return fmt.Errorf("mfa: failed to save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "backup code redeemed",
		logger.AccountID(accountID.String()),
		logger.Component("mfa"),
		slog.Int("remaining", len(next.BackupCodeHashes)),
	)
	return nil
}

// RemainingBackupCodes returns how many unused backup codes the account holds.
func (s *Service) RemainingBackupCodes(ctx context.Context, accountID uuid.UUID) (int, error) {
	current, err := s.load(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, ErrNotSetUp
	}
	return len(current.BackupCodeHashes), nil
}

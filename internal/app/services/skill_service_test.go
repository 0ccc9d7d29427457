package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

func TestSkillManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("create normalizes code and defaults", func(t *testing.T) {
		store := newFakeSkillStore()
		svc := NewSkillService(store)

		resp, err := svc.Create(ctx, "  Digital Marketing ", " DIGITAL_MARKETING ", "Social media and SEO", true)
		require.NoError(t, err)
		assert.Equal(t, "Digital Marketing", resp.Name)
		assert.Equal(t, "digital_marketing", resp.Code)
		assert.True(t, resp.IsActive)
	})

	t.Run("create rejects blank name or code", func(t *testing.T) {
		store := newFakeSkillStore()
		svc := NewSkillService(store)

		_, err := svc.Create(ctx, "  ", "fashion_design", "", true)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Empty(t, store.skills)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		store := newFakeSkillStore()
		store.add("Fashion Design", "fashion_design", true)
		svc := NewSkillService(store)

		_, err := svc.Create(ctx, "Fashion", "fashion_design", "", true)
		assert.ErrorIs(t, err, apperrors.ErrSkillAlreadyExists)
	})

	t.Run("active listing excludes closed tracks", func(t *testing.T) {
		store := newFakeSkillStore()
		store.add("Fashion Design", "fashion_design", true)
		store.add("Shoe Making", "shoe_making", false)
		svc := NewSkillService(store)

		active, err := svc.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "fashion_design", active[0].Code)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("set active reopens a track", func(t *testing.T) {
		store := newFakeSkillStore()
		skill := store.add("Shoe Making", "shoe_making", false)
		svc := NewSkillService(store)

		require.NoError(t, svc.SetActive(ctx, skill.ID, true))

		resp, err := svc.Get(ctx, skill.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("delete removes the track", func(t *testing.T) {
		store := newFakeSkillStore()
		skill := store.add("Fashion Design", "fashion_design", true)
		svc := NewSkillService(store)

		require.NoError(t, svc.Delete(ctx, skill.ID))

		_, err := svc.Get(ctx, skill.ID)
		assert.ErrorIs(t, err, apperrors.ErrSkillNotFound)
	})

	t.Run("delete unknown skill", func(t *testing.T) {
		svc := NewSkillService(newFakeSkillStore())

		err := svc.Delete(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrSkillNotFound)
	})
}

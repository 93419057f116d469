package running

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

func TestWalk(t *testing.T) {
	t.Run("Bases loaded walk forces in a run", func(t *testing.T) {
		loaded := entity.RunnerState{First: r1, Second: r2, Third: r3}
		result := Walk(batter, loaded, false)

		assert.Equal(t, entity.PlayWalk, result.Kind)
		assert.Equal(t, 1, result.Runs)
		assert.Equal(t, 1, result.RBI)
		assert.Equal(t, []string{"r3"}, result.Scorers())
	})

	t.Run("Unforced runners stay put", func(t *testing.T) {
		runners := entity.RunnerState{Third: r3}
		result := Walk(batter, runners, true)

		assert.Equal(t, entity.PlayIntentionalWalk, result.Kind)
		assert.Zero(t, result.Runs)
		next, _ := runners.ApplyAdvances(batter, result.Advances)
		assert.Equal(t, "r3", next.Third.ID)
		assert.Equal(t, "bat", next.First.ID)
	})
}

func TestResolveSteal(t *testing.T) {
	t.Run("Stolen base", func(t *testing.T) {
		result, ok := ResolveSteal(StealInput{Runners: entity.RunnerState{First: r1}, CatcherArm: 50}, dice.NewSequence(0))

		require.True(t, ok)
		assert.Equal(t, entity.PlayStolenBase, result.Kind)
		assert.False(t, result.EndsPlateAppearance)
		assert.Contains(t, result.Advances, entity.Advance{RunnerID: "r1", Name: "One", From: entity.BaseFirst, To: entity.BaseSecond})
	})

	t.Run("Caught stealing", func(t *testing.T) {
		result, ok := ResolveSteal(StealInput{Runners: entity.RunnerState{First: r1}, CatcherArm: 50}, dice.NewSequence(99.9))

		require.True(t, ok)
		assert.Equal(t, entity.PlayCaughtStealing, result.Kind)
		assert.Equal(t, 1, result.Outs)
	})

	t.Run("No eligible runner", func(t *testing.T) {
		_, ok := ResolveSteal(StealInput{Runners: entity.RunnerState{Third: r3}}, dice.NewSequence(0))
		assert.False(t, ok)
	})

	t.Run("Double steal throws at the lead runner", func(t *testing.T) {
		runners := entity.RunnerState{First: r1, Third: r3}
		result, ok := ResolveSteal(StealInput{Runners: runners, Double: true, CatcherArm: 50}, dice.NewSequence(99.9))

		require.True(t, ok)
		assert.Contains(t, result.Advances, entity.Advance{RunnerID: "r3", Name: "Three", From: entity.BaseThird, To: entity.BaseHome, Out: true})
		assert.Contains(t, result.Advances, entity.Advance{RunnerID: "r1", Name: "One", From: entity.BaseFirst, To: entity.BaseSecond})
		assert.Zero(t, result.Runs)
	})

	t.Run("Steal of home scores", func(t *testing.T) {
		runners := entity.RunnerState{First: r1, Third: r3}
		result, ok := ResolveSteal(StealInput{Runners: runners, Double: true, CatcherArm: 50}, dice.NewSequence(0))

		require.True(t, ok)
		assert.Equal(t, 1, result.Runs)
		assert.Equal(t, entity.PlayStolenBase, result.Kind)
	})
}

func TestStealChance(t *testing.T) {
	fast := RunnerAbility{Speed: 100, Stealing: 100, Baserunning: 100}
	slow := RunnerAbility{Speed: 1, Stealing: 1, Baserunning: 1}

	assert.InDelta(t, maxSteal, StealChance(fast, 1, entity.BaseSecond, 0), 0)
	assert.InDelta(t, minSteal, StealChance(slow, 100, entity.BaseHome, 0), 0)
	assert.Greater(t, StealChance(NeutralRunner(), 50, entity.BaseSecond, 0), StealChance(NeutralRunner(), 50, entity.BaseThird, 0))
}

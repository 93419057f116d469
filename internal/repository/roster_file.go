package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

type rosterDocument struct {
	Teams []teamDocument `yaml:"teams"`
}

type teamDocument struct {
	TeamID  string                     `yaml:"team_id"`
	Name    string                     `yaml:"name"`
	Lineup  []string                   `yaml:"lineup"`
	Defense map[entity.Position]string `yaml:"defense"`
	Players []entity.PlayerRecord      `yaml:"players"`
}

func (that teamDocument) roster() (*entity.Roster, error) {
	roster := &entity.Roster{
		TeamID:  that.TeamID,
		Name:    that.Name,
		Lineup:  that.Lineup,
		Defense: that.Defense,
	}

	for _, record := range that.Players {
		rating, err := record.Rating()
		if err != nil {
			return nil, fmt.Errorf("team %s player %s: %w", that.TeamID, record.ID, err)
		}
		roster.Players = append(roster.Players, rating)
	}

	return roster, nil
}

// RosterFile is a read-only roster provider loaded from a YAML document.
type RosterFile struct {
	rosters []*entity.Roster
	byTeam  map[string]*entity.Roster
}

func NewRosterFile(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read roster file: %w", err)
	}
	return ParseRosters(data)
}

// ParseRosters decodes a roster document. Every player must carry the
// ability block its role calls for; unknown keys are rejected.
func ParseRosters(data []byte) (*RosterFile, error) {
	var doc rosterDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("can't parse roster file: %w", err)
	}

	file := &RosterFile{byTeam: make(map[string]*entity.Roster, len(doc.Teams))}
	for _, team := range doc.Teams {
		roster, err := team.roster()
		if err != nil {
			return nil, err
		}
		if _, ok := file.byTeam[roster.TeamID]; ok {
			return nil, fmt.Errorf("duplicate team %s in roster file", roster.TeamID)
		}

		file.rosters = append(file.rosters, roster)
		file.byTeam[roster.TeamID] = roster
	}

	return file, nil
}

func (that *RosterFile) GetByTeamID(_ context.Context, teamID string) (*entity.Roster, error) {
	roster, ok := that.byTeam[teamID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTeamNotFound, teamID)
	}
	return roster, nil
}

func (that *RosterFile) List(_ context.Context) ([]*entity.Roster, error) {
	return that.rosters, nil
}

package mock

import (
	"context"
	"fmt"

	"securewatch/internal/dialog"
	"securewatch/internal/models"
)

// TeamStore is the read-only team roster.
type TeamStore struct {
	members []models.TeamMember
}

var _ dialog.TeamDirectory = (*TeamStore)(nil)

func NewTeamStore(members []models.TeamMember) *TeamStore {
	out := make([]models.TeamMember, len(members))
	for i, m := range members {
		out[i] = cloneMember(m)
	}
	return &TeamStore{members: out}
}

func (s *TeamStore) Members(context.Context) ([]models.TeamMember, error) {
	out := make([]models.TeamMember, len(s.members))
	for i, m := range s.members {
		out[i] = cloneMember(m)
	}
	return out, nil
}

func (s *TeamStore) Member(_ context.Context, id string) (models.TeamMember, error) {
	for _, m := range s.members {
		if m.ID == id {
			return cloneMember(m), nil
		}
	}
	return models.TeamMember{}, fmt.Errorf("%w: %q", dialog.ErrMemberNotFound, id)
}

func cloneMember(m models.TeamMember) models.TeamMember {
	m.Expertise = append([]string(nil), m.Expertise...)
	return m
}

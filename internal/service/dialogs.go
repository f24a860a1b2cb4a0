package service

import (
	"context"
	"errors"

	"securewatch/internal/dialog"
	"securewatch/internal/metrics"
)

// ErrNotFixDialog is returned when a progress stream is requested for a
// dialog that has no simulator.
var ErrNotFixDialog = errors.New("dialog has no fix progress")

// DialogService opens dialogs against incidents and tracks their sessions.
type DialogService struct {
	manager   *dialog.Manager
	incidents *IncidentService
}

func NewDialogService(manager *dialog.Manager, incidents *IncidentService) *DialogService {
	return &DialogService{manager: manager, incidents: incidents}
}

func (s *DialogService) Open(ctx context.Context, incidentID string, kind dialog.Kind) (dialog.View, error) {
	inc, err := s.incidents.Incident(ctx, incidentID)
	if err != nil {
		return dialog.View{}, err
	}
	d, err := s.manager.Open(kind, inc)
	if err != nil {
		return dialog.View{}, err
	}
	metrics.RecordDialogOpened(string(kind))
	metrics.SetActiveDialogs(s.manager.Len())

	v := d.View()
	if v.Options == nil {
		v.Options = s.options(ctx, kind)
	}
	return v, nil
}

func (s *DialogService) View(ctx context.Context, id string) (dialog.View, error) {
	d, err := s.manager.Get(id)
	if err != nil {
		return dialog.View{}, err
	}
	v := d.View()
	if v.Options == nil {
		v.Options = s.options(ctx, v.Kind)
	}
	return v, nil
}

// Submit runs the dialog's submit flow with the payload decoded by decode.
func (s *DialogService) Submit(ctx context.Context, id string, decode dialog.Decoder) (dialog.Outcome, error) {
	d, err := s.manager.Get(id)
	if err != nil {
		return dialog.Outcome{}, err
	}
	kind := string(d.View().Kind)

	out, err := d.Submit(ctx, decode)
	var verr *dialog.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.RecordDialogSubmission(kind, "invalid")
	case err != nil:
		metrics.RecordDialogSubmission(kind, "error")
	default:
		metrics.RecordDialogSubmission(kind, "ok")
		if out.Progress != nil {
			metrics.RecordFixStarted()
		}
	}
	return out, err
}

// Close closes and forgets a dialog, returning its final view.
func (s *DialogService) Close(_ context.Context, id string) (dialog.View, error) {
	d, err := s.manager.Get(id)
	if err != nil {
		return dialog.View{}, err
	}
	if _, err := s.manager.Close(id); err != nil {
		return dialog.View{}, err
	}
	metrics.SetActiveDialogs(s.manager.Len())
	return d.View(), nil
}

// FixDialog returns the apply-fix dialog behind id for progress streaming.
func (s *DialogService) FixDialog(id string) (*dialog.FixDialog, error) {
	d, err := s.manager.Get(id)
	if err != nil {
		return nil, err
	}
	fd, ok := d.(*dialog.FixDialog)
	if !ok {
		return nil, ErrNotFixDialog
	}
	return fd, nil
}

// Sweep evicts expired sessions and reports how many remain.
func (s *DialogService) Sweep() int {
	s.manager.DeleteExpired()
	n := s.manager.Len()
	metrics.SetActiveDialogs(n)
	return n
}

// CloseAll closes every session, cancelling running fixes.
func (s *DialogService) CloseAll() {
	s.manager.CloseAll()
	metrics.SetActiveDialogs(0)
}

// options fills the choices a dialog cannot know on its own: the reassign
// roster comes from the team store.
func (s *DialogService) options(ctx context.Context, kind dialog.Kind) any {
	if kind != dialog.KindReassign {
		return nil
	}
	team, err := s.incidents.Team(ctx)
	if err != nil {
		return nil
	}
	return map[string]any{"team": team}
}

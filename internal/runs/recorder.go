package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
)

// Recorder adapts the run store to the transcript workflow's audit boundary.
func Recorder(sys System) transcripts.Recorder {
	return recorder{sys: sys}
}

type recorder struct {
	sys System
}

func (r recorder) StartRun(ctx context.Context, info transcripts.RunInfo) (uuid.UUID, error) {
	return r.sys.StartRun(ctx, StartParams{
		SubjectID:     info.MeetingID,
		OrgID:         info.OrgID,
		RunType:       info.RunType,
		QAGoal:        info.QAGoal,
		CorrelationID: info.CorrelationID,
	})
}

func (r recorder) LogIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) error {
	return r.sys.LogIssue(ctx, runID, issueType, severity, detail)
}

func (r recorder) CompleteRun(ctx context.Context, runID uuid.UUID, extracted, passed, rejected int) error {
	return r.sys.CompleteRun(ctx, runID, extracted, passed, rejected)
}

package entities

import "time"

type StepType string
type StepStatus string

const (
	StepBriefReceived    StepType = "brief_received"
	StepProfilesProposed StepType = "profiles_proposed"
	StepCreatorSelected  StepType = "creator_selected"
	StepScriptSubmitted  StepType = "script_submitted"
	StepScriptApproved   StepType = "script_approved"
	StepVideoSubmitted   StepType = "video_submitted"
	StepVideoApproved    StepType = "video_approved"
	StepMissionCompleted StepType = "mission_completed"

	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusDone       StepStatus = "done"
	StepStatusRejected   StepStatus = "rejected"
)

// StepOrder is the fixed total order of mission checkpoints. A step is
// actionable only once its predecessor is done.
var StepOrder = []StepType{
	StepBriefReceived,
	StepProfilesProposed,
	StepCreatorSelected,
	StepScriptSubmitted,
	StepScriptApproved,
	StepVideoSubmitted,
	StepVideoApproved,
	StepMissionCompleted,
}

// MissionStep is one checkpoint in a campaign's production pipeline.
// Payload carries the step artifact: proposed profile ids, script text,
// a revision note, or a deliverable media key.
type MissionStep struct {
	StepID     string
	CampaignID string
	Type       StepType
	Status     StepStatus
	Payload    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func stepIndex(t StepType) int {
	for i, item := range StepOrder {
		if item == t {
			return i
		}
	}
	return -1
}

// Mission wraps the ordered steps of one campaign and enforces the
// predecessor rule, so step ordering no longer depends on which actions
// a caller happens to offer.
type Mission struct {
	steps map[StepType]MissionStep
}

func NewMission(items []MissionStep) Mission {
	steps := make(map[StepType]MissionStep, len(items))
	for _, item := range items {
		steps[item.Type] = item
	}
	return Mission{steps: steps}
}

func (m Mission) Step(t StepType) (MissionStep, bool) {
	item, ok := m.steps[t]
	return item, ok
}

func (m Mission) IsDone(t StepType) bool {
	item, ok := m.steps[t]
	return ok && item.Status == StepStatusDone
}

// PredecessorDone reports whether the step before t is complete. The
// first step has no predecessor and is always actionable.
func (m Mission) PredecessorDone(t StepType) bool {
	idx := stepIndex(t)
	if idx < 0 {
		return false
	}
	if idx == 0 {
		return true
	}
	return m.IsDone(StepOrder[idx-1])
}

// SeedSteps builds the initial step rows for a new campaign. The brief
// is received at creation, so that step starts done; everything else is
// pending.
func SeedSteps(campaignID string, ids []string, now time.Time) []MissionStep {
	items := make([]MissionStep, 0, len(StepOrder))
	for i, t := range StepOrder {
		status := StepStatusPending
		if t == StepBriefReceived {
			status = StepStatusDone
		}
		items = append(items, MissionStep{
			StepID:     ids[i],
			CampaignID: campaignID,
			Type:       t,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return items
}

package content

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	"github.com/roboreach/site-api/internal/resource"
)

// Registry holds the wired gateway handlers for every managed content
// entity. One store and one handler per entity, all sharing the generic
// list/create/patch/delete contract.
type Registry struct {
	Projects      *resource.Handler[models.Project, CreateProjectRequest, UpdateProjectRequest]
	Partners      *resource.Handler[models.Partner, CreatePartnerRequest, UpdatePartnerRequest]
	TeamMembers   *resource.Handler[models.TeamMember, CreateTeamMemberRequest, UpdateTeamMemberRequest]
	Milestones    *resource.Handler[models.Milestone, CreateMilestoneRequest, UpdateMilestoneRequest]
	Timeline      *resource.Handler[models.TimelineItem, CreateTimelineItemRequest, UpdateTimelineItemRequest]
	ImpactMetrics *resource.Handler[models.ImpactMetric, CreateImpactMetricRequest, UpdateImpactMetricRequest]
	Tools         *resource.Handler[models.Tool, CreateToolRequest, UpdateToolRequest]
	Resources     *resource.Handler[models.Resource, CreateResourceRequest, UpdateResourceRequest]
	Universities  *resource.Handler[models.University, CreateUniversityRequest, UpdateUniversityRequest]

	logger *zap.Logger
}

// NewRegistry wires every managed entity against the shared database handle.
func NewRegistry(db *sqlx.DB, validate *validator.Validate, logger *zap.Logger) *Registry {
	if validate == nil {
		validate = resource.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		Projects:      newProjectHandler(db, validate, logger),
		Partners:      newPartnerHandler(db, validate, logger),
		TeamMembers:   newTeamMemberHandler(db, validate, logger),
		Milestones:    newMilestoneHandler(db, validate, logger),
		Timeline:      newTimelineHandler(db, validate, logger),
		ImpactMetrics: newImpactMetricHandler(db, validate, logger),
		Tools:         newToolHandler(db, validate, logger),
		Resources:     newResourceHandler(db, validate, logger),
		Universities:  newUniversityHandler(db, validate, logger),
		logger:        logger,
	}
}

// OnStatsWrite registers a callback fired after mutations to the entities the
// dashboard aggregates count: projects, partners and team members.
func (r *Registry) OnStatsWrite(fn func(ctx context.Context)) {
	r.Projects.OnWrite(fn)
	r.Partners.OnWrite(fn)
	r.TeamMembers.OnWrite(fn)
}

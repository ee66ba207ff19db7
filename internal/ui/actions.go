package ui

import (
	"context"
	"fmt"

	"github.com/derailed/tcell/v2"

	"github.com/sigap/sigap/internal/dao"
)

// ResourceAction represents an extra action available on a record type.
type ResourceAction struct {
	Key         tcell.Key
	Name        string
	Description string
	Dangerous   bool // Requires confirmation
	Handler     func(ctx context.Context, f dao.Factory, id string) error
}

// ActionRegistry maps resource types to their available actions.
var ActionRegistry = map[string][]ResourceAction{}

// RegisterActions registers actions for a resource type.
func RegisterActions(resourceType string, actions []ResourceAction) {
	ActionRegistry[resourceType] = actions
}

// GetActions returns available actions for a resource type.
func GetActions(rid *dao.ResourceID) []ResourceAction {
	if rid == nil {
		return nil
	}
	return ActionRegistry[rid.String()]
}

// GetAction returns a specific action by key for a resource type.
func GetAction(rid *dao.ResourceID, key tcell.Key) *ResourceAction {
	actions := GetActions(rid)
	for i := range actions {
		if actions[i].Key == key {
			return &actions[i]
		}
	}
	return nil
}

// patchStatus issues a single-field replace patch through the record's DAO.
func patchStatus(ctx context.Context, f dao.Factory, rid *dao.ResourceID, id, path, value string) error {
	acc, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}

	updater, ok := acc.(dao.Updater)
	if !ok {
		return fmt.Errorf("resource %s does not support patch", rid)
	}

	ops := fmt.Sprintf(`[{"op":"replace","path":%q,"value":%q}]`, path, value)
	return updater.PatchOps(ctx, id, []byte(ops))
}

func init() {
	RegisterActions("case/family", []ResourceAction{
		{
			Key:         tcell.KeyCtrlG,
			Name:        "Graduate",
			Description: "Mark family as graduated",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				return patchStatus(ctx, f, &dao.FamilyRID, id, "/status", "lulus")
			},
		},
	})

	RegisterActions("program/visit", []ResourceAction{
		{
			Key:         tcell.KeyCtrlF,
			Name:        "Close Follow-up",
			Description: "Mark follow-up as done",
			Dangerous:   false,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := dao.AccessorFor(f, &dao.VisitRID)
				if err != nil {
					return err
				}
				updater, ok := acc.(dao.Updater)
				if !ok {
					return fmt.Errorf("visits do not support patch")
				}
				return updater.PatchOps(ctx, id, []byte(`[{"op":"replace","path":"/needsFollowUp","value":false}]`))
			},
		},
	})

	RegisterActions("staff/employee", []ResourceAction{
		{
			Key:         tcell.KeyCtrlL,
			Name:        "Toggle Leave",
			Description: "Place employee on leave",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				return patchStatus(ctx, f, &dao.EmployeeRID, id, "/status", "cuti")
			},
		},
	})
}

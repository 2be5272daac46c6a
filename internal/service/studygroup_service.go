package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/studyhall/internal/admission"
	"github.com/mmynk/studyhall/internal/api"
	"github.com/mmynk/studyhall/internal/api/studyhallconnect"
	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/middleware"
	"github.com/mmynk/studyhall/internal/models"
)

// StudyGroupService implements the Connect StudyGroupService.
type StudyGroupService struct {
	studyhallconnect.UnimplementedStudyGroupServiceHandler
	engine     *admission.Engine
	dispatcher *events.Dispatcher
}

// NewStudyGroupService creates a StudyGroupService. Events returned by the
// engine are handed to dispatcher after each successful call.
func NewStudyGroupService(engine *admission.Engine, dispatcher *events.Dispatcher) *StudyGroupService {
	return &StudyGroupService{engine: engine, dispatcher: dispatcher}
}

// caller resolves the authenticated user. Every RPC calls it first.
func (s *StudyGroupService) caller(ctx context.Context) (*models.User, error) {
	user, err := s.engine.CurrentUser(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, apperr.ToConnect(err)
	}
	return user, nil
}

// admitted turns an engine result into a response. A Conflict is a
// decision point for the caller, so it is answered rather than raised.
func (s *StudyGroupService) admitted(ctx context.Context, op string, res *admission.Result, err error) (*connect.Response[api.AdmissionResponse], error) {
	if conflict := api.FromConflict(err); conflict != nil {
		slog.Info(op+" conflict", "groups", len(conflict.Groups), "resolvable", conflict.Resolvable)
		return connect.NewResponse(&api.AdmissionResponse{Outcome: api.OutcomeConflict, Conflict: conflict}), nil
	}
	if err != nil {
		slog.Warn(op+" failed", "error", err)
		return nil, apperr.ToConnect(err)
	}

	s.dispatch(ctx, res.Events)

	resp := &api.AdmissionResponse{
		Outcome:     string(res.Outcome),
		Group:       api.FromGroup(res.Group),
		LeftGroupID: res.LeftGroupID,
		Invitation:  api.FromInvitation(res.Invitation),
		Overwrote:   res.Overwrote,
	}
	slog.Info(op+" successful", "outcome", resp.Outcome)
	return connect.NewResponse(resp), nil
}

// dispatch runs post-commit events detached from request cancellation.
func (s *StudyGroupService) dispatch(ctx context.Context, evs []events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(context.WithoutCancel(ctx), evs)
}

// CreateGroup creates a group hosted by the caller.
func (s *StudyGroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"host_id", user.ID,
		"title", req.Msg.Title,
		"capacity", req.Msg.Capacity,
	)

	res, err := s.engine.CreateGroup(ctx, user.ID, admission.GroupSpec{
		Title:      req.Msg.Title,
		Start:      req.Msg.Start,
		End:        req.Msg.End,
		Capacity:   req.Msg.Capacity,
		Visibility: models.Visibility(req.Msg.Visibility),
	})
	if err != nil {
		slog.Warn("CreateGroup failed", "error", err)
		return nil, apperr.ToConnect(err)
	}

	slog.Info("Group created", "group_id", res.Group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: api.FromGroup(res.Group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *StudyGroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	group, err := s.engine.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, apperr.ToConnect(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: api.FromGroup(group)}), nil
}

// ListMyGroups lists the caller's upcoming and running groups.
func (s *StudyGroupService) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.engine.ListMyGroups(ctx, user.ID)
	if err != nil {
		slog.Error("ListMyGroups failed", "user_id", user.ID, "error", err)
		return nil, apperr.ToConnect(err)
	}
	return connect.NewResponse(&api.ListMyGroupsResponse{Groups: api.FromGroups(groups)}), nil
}

// CloseGroup closes one of the caller's groups.
func (s *StudyGroupService) CloseGroup(ctx context.Context, req *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CloseGroup request received", "user_id", user.ID, "group_id", req.Msg.GroupID)
	res, err := s.engine.CloseGroup(ctx, user.ID, req.Msg.GroupID)
	return s.admitted(ctx, "CloseGroup", res, err)
}

// JoinGroup seats the caller in a group.
func (s *StudyGroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received",
		"user_id", user.ID,
		"group_id", req.Msg.GroupID,
		"confirmed", req.Msg.Confirmed,
	)
	res, err := s.engine.Join(ctx, user.ID, req.Msg.GroupID, req.Msg.Confirmed)
	return s.admitted(ctx, "JoinGroup", res, err)
}

// LeaveGroup unseats the caller.
func (s *StudyGroupService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("LeaveGroup request received", "user_id", user.ID, "group_id", req.Msg.GroupID)
	res, err := s.engine.Leave(ctx, user.ID, req.Msg.GroupID)
	return s.admitted(ctx, "LeaveGroup", res, err)
}

// ResolveConflict answers a conflict prompt.
func (s *StudyGroupService) ResolveConflict(ctx context.Context, req *connect.Request[api.ResolveConflictRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ResolveConflict request received",
		"user_id", user.ID,
		"old_group_id", req.Msg.OldGroupID,
		"new_group_id", req.Msg.NewGroupID,
		"invitation_id", req.Msg.InvitationID,
		"confirmed", req.Msg.Confirmed,
	)
	res, err := s.engine.Resolve(ctx, admission.ResolveRequest{
		UserID:       user.ID,
		OldGroupID:   req.Msg.OldGroupID,
		NewGroupID:   req.Msg.NewGroupID,
		InvitationID: req.Msg.InvitationID,
		Confirmed:    req.Msg.Confirmed,
	})
	return s.admitted(ctx, "ResolveConflict", res, err)
}

// SendInvitation invites another user to a group.
func (s *StudyGroupService) SendInvitation(ctx context.Context, req *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SendInvitation request received",
		"sender_id", user.ID,
		"receiver_id", req.Msg.ReceiverID,
		"group_id", req.Msg.GroupID,
	)
	res, err := s.engine.SendInvitation(ctx, user.ID, req.Msg.ReceiverID, req.Msg.GroupID)
	return s.admitted(ctx, "SendInvitation", res, err)
}

// AcceptInvitation accepts an invitation addressed to the caller.
func (s *StudyGroupService) AcceptInvitation(ctx context.Context, req *connect.Request[api.AcceptInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AcceptInvitation request received",
		"user_id", user.ID,
		"invitation_id", req.Msg.InvitationID,
		"confirmed", req.Msg.Confirmed,
	)
	res, err := s.engine.AcceptInvitation(ctx, user.ID, req.Msg.InvitationID, req.Msg.Confirmed)
	return s.admitted(ctx, "AcceptInvitation", res, err)
}

// RejectInvitation declines an invitation addressed to the caller.
func (s *StudyGroupService) RejectInvitation(ctx context.Context, req *connect.Request[api.RejectInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RejectInvitation request received", "user_id", user.ID, "invitation_id", req.Msg.InvitationID)
	res, err := s.engine.RejectInvitation(ctx, user.ID, req.Msg.InvitationID)
	return s.admitted(ctx, "RejectInvitation", res, err)
}

// ListInvitations lists the caller's pending invitations.
func (s *StudyGroupService) ListInvitations(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	invs, err := s.engine.ListInvitations(ctx, user.ID)
	if err != nil {
		slog.Error("ListInvitations failed", "user_id", user.ID, "error", err)
		return nil, apperr.ToConnect(err)
	}
	return connect.NewResponse(&api.ListInvitationsResponse{Invitations: api.FromInvitations(invs)}), nil
}

// ListNotifications lists the caller's most recent notifications.
func (s *StudyGroupService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Limit < 0 {
		return nil, apperr.ToConnect(apperr.Validation("limit must not be negative"))
	}
	ns, err := s.engine.ListNotifications(ctx, user.ID, req.Msg.Limit)
	if err != nil {
		slog.Error("ListNotifications failed", "user_id", user.ID, "error", err)
		return nil, apperr.ToConnect(err)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: api.FromNotifications(ns)}), nil
}

// MarkNotificationRead acknowledges one of the caller's notifications.
func (s *StudyGroupService) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.engine.MarkNotificationRead(ctx, user.ID, req.Msg.NotificationID); err != nil {
		return nil, apperr.ToConnect(err)
	}
	return connect.NewResponse(&api.MarkNotificationReadResponse{}), nil
}

// SweepInvitations expires stale invitations on demand. Sweeping a single
// group is reserved for its host.
func (s *StudyGroupService) SweepInvitations(ctx context.Context, req *connect.Request[api.SweepInvitationsRequest]) (*connect.Response[api.SweepInvitationsResponse], error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.GroupID != "" {
		group, err := s.engine.GetGroup(ctx, req.Msg.GroupID)
		if err != nil {
			return nil, apperr.ToConnect(err)
		}
		if !group.IsHost(user.ID) {
			return nil, apperr.ToConnect(apperr.Unauthorized("only the host can sweep group %s", group.ID))
		}
	}

	expired, err := s.engine.Sweep(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("SweepInvitations failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, apperr.ToConnect(err)
	}
	slog.Info("SweepInvitations successful", "group_id", req.Msg.GroupID, "expired", expired)
	return connect.NewResponse(&api.SweepInvitationsResponse{Expired: expired}), nil
}

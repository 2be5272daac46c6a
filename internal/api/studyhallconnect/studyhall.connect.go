// Package studyhallconnect binds StudyGroupService to Connect.
package studyhallconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/studyhall/internal/api"
)

// StudyGroupServiceName is the fully-qualified name of the service.
const StudyGroupServiceName = "studyhall.v1.StudyGroupService"

// Procedure paths, one per RPC.
const (
	CreateGroupProcedure          = "/" + StudyGroupServiceName + "/CreateGroup"
	GetGroupProcedure             = "/" + StudyGroupServiceName + "/GetGroup"
	ListMyGroupsProcedure         = "/" + StudyGroupServiceName + "/ListMyGroups"
	CloseGroupProcedure           = "/" + StudyGroupServiceName + "/CloseGroup"
	JoinGroupProcedure            = "/" + StudyGroupServiceName + "/JoinGroup"
	LeaveGroupProcedure           = "/" + StudyGroupServiceName + "/LeaveGroup"
	ResolveConflictProcedure      = "/" + StudyGroupServiceName + "/ResolveConflict"
	SendInvitationProcedure       = "/" + StudyGroupServiceName + "/SendInvitation"
	AcceptInvitationProcedure     = "/" + StudyGroupServiceName + "/AcceptInvitation"
	RejectInvitationProcedure     = "/" + StudyGroupServiceName + "/RejectInvitation"
	ListInvitationsProcedure      = "/" + StudyGroupServiceName + "/ListInvitations"
	ListNotificationsProcedure    = "/" + StudyGroupServiceName + "/ListNotifications"
	MarkNotificationReadProcedure = "/" + StudyGroupServiceName + "/MarkNotificationRead"
	SweepInvitationsProcedure     = "/" + StudyGroupServiceName + "/SweepInvitations"
)

// StudyGroupServiceHandler is implemented by the server.
type StudyGroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error)
	CloseGroup(context.Context, *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	ResolveConflict(context.Context, *connect.Request[api.ResolveConflictRequest]) (*connect.Response[api.AdmissionResponse], error)
	SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	AcceptInvitation(context.Context, *connect.Request[api.AcceptInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	RejectInvitation(context.Context, *connect.Request[api.RejectInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	SweepInvitations(context.Context, *connect.Request[api.SweepInvitationsRequest]) (*connect.Response[api.SweepInvitationsResponse], error)
}

// NewStudyGroupServiceHandler builds an HTTP handler for svc. It returns the
// path prefix to mount it on.
func NewStudyGroupServiceHandler(svc StudyGroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSONCodec()}, opts...)
	handlers := map[string]http.Handler{
		CreateGroupProcedure:          connect.NewUnaryHandler(CreateGroupProcedure, svc.CreateGroup, opts...),
		GetGroupProcedure:             connect.NewUnaryHandler(GetGroupProcedure, svc.GetGroup, opts...),
		ListMyGroupsProcedure:         connect.NewUnaryHandler(ListMyGroupsProcedure, svc.ListMyGroups, opts...),
		CloseGroupProcedure:           connect.NewUnaryHandler(CloseGroupProcedure, svc.CloseGroup, opts...),
		JoinGroupProcedure:            connect.NewUnaryHandler(JoinGroupProcedure, svc.JoinGroup, opts...),
		LeaveGroupProcedure:           connect.NewUnaryHandler(LeaveGroupProcedure, svc.LeaveGroup, opts...),
		ResolveConflictProcedure:      connect.NewUnaryHandler(ResolveConflictProcedure, svc.ResolveConflict, opts...),
		SendInvitationProcedure:       connect.NewUnaryHandler(SendInvitationProcedure, svc.SendInvitation, opts...),
		AcceptInvitationProcedure:     connect.NewUnaryHandler(AcceptInvitationProcedure, svc.AcceptInvitation, opts...),
		RejectInvitationProcedure:     connect.NewUnaryHandler(RejectInvitationProcedure, svc.RejectInvitation, opts...),
		ListInvitationsProcedure:      connect.NewUnaryHandler(ListInvitationsProcedure, svc.ListInvitations, opts...),
		ListNotificationsProcedure:    connect.NewUnaryHandler(ListNotificationsProcedure, svc.ListNotifications, opts...),
		MarkNotificationReadProcedure: connect.NewUnaryHandler(MarkNotificationReadProcedure, svc.MarkNotificationRead, opts...),
		SweepInvitationsProcedure:     connect.NewUnaryHandler(SweepInvitationsProcedure, svc.SweepInvitations, opts...),
	}
	return "/" + StudyGroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedStudyGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedStudyGroupServiceHandler struct{}

func (UnimplementedStudyGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.CreateGroup is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.GetGroup is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.ListMyGroups is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) CloseGroup(context.Context, *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.CloseGroup is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.JoinGroup is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.LeaveGroup is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) ResolveConflict(context.Context, *connect.Request[api.ResolveConflictRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.ResolveConflict is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.SendInvitation is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) AcceptInvitation(context.Context, *connect.Request[api.AcceptInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.AcceptInvitation is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) RejectInvitation(context.Context, *connect.Request[api.RejectInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.RejectInvitation is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.ListInvitations is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.ListNotifications is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.MarkNotificationRead is not implemented"))
}

func (UnimplementedStudyGroupServiceHandler) SweepInvitations(context.Context, *connect.Request[api.SweepInvitationsRequest]) (*connect.Response[api.SweepInvitationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("studyhall.v1.StudyGroupService.SweepInvitations is not implemented"))
}

// StudyGroupServiceClient is a client for StudyGroupService.
type StudyGroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error)
	CloseGroup(context.Context, *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.AdmissionResponse], error)
	ResolveConflict(context.Context, *connect.Request[api.ResolveConflictRequest]) (*connect.Response[api.AdmissionResponse], error)
	SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	AcceptInvitation(context.Context, *connect.Request[api.AcceptInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	RejectInvitation(context.Context, *connect.Request[api.RejectInvitationRequest]) (*connect.Response[api.AdmissionResponse], error)
	ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	SweepInvitations(context.Context, *connect.Request[api.SweepInvitationsRequest]) (*connect.Response[api.SweepInvitationsResponse], error)
}

type studyGroupServiceClient struct {
	createGroup          *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup             *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listMyGroups         *connect.Client[api.ListMyGroupsRequest, api.ListMyGroupsResponse]
	closeGroup           *connect.Client[api.CloseGroupRequest, api.AdmissionResponse]
	joinGroup            *connect.Client[api.JoinGroupRequest, api.AdmissionResponse]
	leaveGroup           *connect.Client[api.LeaveGroupRequest, api.AdmissionResponse]
	resolveConflict      *connect.Client[api.ResolveConflictRequest, api.AdmissionResponse]
	sendInvitation       *connect.Client[api.SendInvitationRequest, api.AdmissionResponse]
	acceptInvitation     *connect.Client[api.AcceptInvitationRequest, api.AdmissionResponse]
	rejectInvitation     *connect.Client[api.RejectInvitationRequest, api.AdmissionResponse]
	listInvitations      *connect.Client[api.ListInvitationsRequest, api.ListInvitationsResponse]
	listNotifications    *connect.Client[api.ListNotificationsRequest, api.ListNotificationsResponse]
	markNotificationRead *connect.Client[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse]
	sweepInvitations     *connect.Client[api.SweepInvitationsRequest, api.SweepInvitationsResponse]
}

// NewStudyGroupServiceClient creates a client for the service at baseURL,
// e.g. "http://localhost:8080".
func NewStudyGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) StudyGroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSONCodec()}, opts...)
	return &studyGroupServiceClient{
		createGroup:          connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		getGroup:             connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GetGroupProcedure, opts...),
		listMyGroups:         connect.NewClient[api.ListMyGroupsRequest, api.ListMyGroupsResponse](httpClient, baseURL+ListMyGroupsProcedure, opts...),
		closeGroup:           connect.NewClient[api.CloseGroupRequest, api.AdmissionResponse](httpClient, baseURL+CloseGroupProcedure, opts...),
		joinGroup:            connect.NewClient[api.JoinGroupRequest, api.AdmissionResponse](httpClient, baseURL+JoinGroupProcedure, opts...),
		leaveGroup:           connect.NewClient[api.LeaveGroupRequest, api.AdmissionResponse](httpClient, baseURL+LeaveGroupProcedure, opts...),
		resolveConflict:      connect.NewClient[api.ResolveConflictRequest, api.AdmissionResponse](httpClient, baseURL+ResolveConflictProcedure, opts...),
		sendInvitation:       connect.NewClient[api.SendInvitationRequest, api.AdmissionResponse](httpClient, baseURL+SendInvitationProcedure, opts...),
		acceptInvitation:     connect.NewClient[api.AcceptInvitationRequest, api.AdmissionResponse](httpClient, baseURL+AcceptInvitationProcedure, opts...),
		rejectInvitation:     connect.NewClient[api.RejectInvitationRequest, api.AdmissionResponse](httpClient, baseURL+RejectInvitationProcedure, opts...),
		listInvitations:      connect.NewClient[api.ListInvitationsRequest, api.ListInvitationsResponse](httpClient, baseURL+ListInvitationsProcedure, opts...),
		listNotifications:    connect.NewClient[api.ListNotificationsRequest, api.ListNotificationsResponse](httpClient, baseURL+ListNotificationsProcedure, opts...),
		markNotificationRead: connect.NewClient[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse](httpClient, baseURL+MarkNotificationReadProcedure, opts...),
		sweepInvitations:     connect.NewClient[api.SweepInvitationsRequest, api.SweepInvitationsResponse](httpClient, baseURL+SweepInvitationsProcedure, opts...),
	}
}

func (c *studyGroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	return c.listMyGroups.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) CloseGroup(ctx context.Context, req *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.closeGroup.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) ResolveConflict(ctx context.Context, req *connect.Request[api.ResolveConflictRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.resolveConflict.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) SendInvitation(ctx context.Context, req *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.sendInvitation.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) AcceptInvitation(ctx context.Context, req *connect.Request[api.AcceptInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.acceptInvitation.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) RejectInvitation(ctx context.Context, req *connect.Request[api.RejectInvitationRequest]) (*connect.Response[api.AdmissionResponse], error) {
	return c.rejectInvitation.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) ListInvitations(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return c.listInvitations.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	return c.markNotificationRead.CallUnary(ctx, req)
}

func (c *studyGroupServiceClient) SweepInvitations(ctx context.Context, req *connect.Request[api.SweepInvitationsRequest]) (*connect.Response[api.SweepInvitationsResponse], error) {
	return c.sweepInvitations.CallUnary(ctx, req)
}

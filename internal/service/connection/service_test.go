package connection

import (
	"testing"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/model"
	"campus_link_server/internal/testfakes"
	"campus_link_server/pkg/enum/connection/connection_status_enum"
	"campus_link_server/pkg/enum/connection/relationship_enum"
	"campus_link_server/pkg/errorx"
)

// newTestService 组装注入内存仓储的连接 Service
func newTestService(userIds ...string) (*connectionService, *testfakes.ConnectionRepo) {
	userRepo := testfakes.NewUserRepo()
	connRepo := testfakes.NewConnectionRepo()
	for _, id := range userIds {
		_ = userRepo.Create(&model.UserInfo{Uuid: id, Nickname: "同学" + id, Telephone: "138000000" + id[1:]})
	}
	repos := repository.NewRepositoriesFrom(userRepo, connRepo, nil, nil, nil)
	return NewConnectionService(repos), connRepo
}

func TestSendRequestCreatesPending(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")

	rsp, err := svc.SendRequest("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.PENDING {
		t.Fatalf("status = %s, want pending", rsp.Status)
	}
	if connRepo.Count() != 1 {
		t.Fatalf("connection rows = %d, want 1", connRepo.Count())
	}

	// 接收方视角：方向 incoming，关系 incoming
	list, err := svc.List("U2", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	if list[0].Direction != relationship_enum.DirectionIncoming {
		t.Fatalf("direction = %s, want incoming", list[0].Direction)
	}
	if list[0].Relationship != relationship_enum.INCOMING {
		t.Fatalf("relationship = %s, want incoming", list[0].Relationship)
	}

	// 发起方视角：方向 outgoing，关系 pending
	list, err = svc.List("U1", "")
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Direction != relationship_enum.DirectionOutgoing || list[0].Relationship != relationship_enum.PENDING {
		t.Fatalf("initiator view = %s/%s, want outgoing/pending", list[0].Direction, list[0].Relationship)
	}
}

func TestSendRequestSelfTarget(t *testing.T) {
	svc, connRepo := newTestService("U1")

	_, err := svc.SendRequest("U1", "U1")
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
	if connRepo.Count() != 0 {
		t.Fatal("self request must not create a row")
	}
}

func TestSendRequestUnknownTarget(t *testing.T) {
	svc, _ := newTestService("U1")

	_, err := svc.SendRequest("U1", "U9")
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}

// 交叉申请：双方互发申请，无论顺序如何都收敛为同一条已通过记录
func TestCrossRequestsMergeToAccepted(t *testing.T) {
	orders := [][2]string{{"U1", "U2"}, {"U2", "U1"}}
	for _, order := range orders {
		svc, connRepo := newTestService("U1", "U2")

		first, err := svc.SendRequest(order[0], order[1])
		if err != nil {
			t.Fatal(err)
		}
		if first.Status != relationship_enum.PENDING {
			t.Fatalf("first status = %s, want pending", first.Status)
		}

		second, err := svc.SendRequest(order[1], order[0])
		if err != nil {
			t.Fatal(err)
		}
		if second.Status != relationship_enum.ACCEPTED {
			t.Fatalf("second status = %s, want accepted", second.Status)
		}
		if second.ConnectionId != first.ConnectionId {
			t.Fatal("cross requests must converge to the same row")
		}
		if connRepo.Count() != 1 {
			t.Fatalf("connection rows = %d, want 1", connRepo.Count())
		}
	}
}

// conflictOnCreateRepo 模拟并发窗口：按配对首查时对方的记录尚不可见，
// 插入时却已撞上配对唯一索引
type conflictOnCreateRepo struct {
	*testfakes.ConnectionRepo
	missOnce bool
}

func (r *conflictOnCreateRepo) FindByPair(userOneId, userTwoId string) (*model.Connection, error) {
	if r.missOnce {
		r.missOnce = false
		return nil, errorx.New(errorx.CodeNotFound, "connection not found")
	}
	return r.ConnectionRepo.FindByPair(userOneId, userTwoId)
}

// 唯一索引兜底路径：Create 报冲突后重读收敛，不把冲突抛给调用方
func TestSendRequestConflictReconcile(t *testing.T) {
	userRepo := testfakes.NewUserRepo()
	connRepo := &conflictOnCreateRepo{ConnectionRepo: testfakes.NewConnectionRepo(), missOnce: true}
	for _, id := range []string{"U1", "U2"} {
		_ = userRepo.Create(&model.UserInfo{Uuid: id, Nickname: "同学" + id, Telephone: "138000000" + id[1:]})
	}
	// 对方抢先写入的在途申请
	err := connRepo.ConnectionRepo.Create(&model.Connection{
		Uuid:        "C1",
		InitiatorId: "U1",
		TargetId:    "U2",
		Status:      connection_status_enum.PENDING,
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewConnectionService(repository.NewRepositoriesFrom(userRepo, connRepo, nil, nil, nil))
	rsp, err := svc.SendRequest("U2", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.ACCEPTED {
		t.Fatalf("status = %s, want accepted", rsp.Status)
	}
	if rsp.ConnectionId != "C1" {
		t.Fatalf("connection id = %s, want C1 (existing row)", rsp.ConnectionId)
	}
	if connRepo.Count() != 1 {
		t.Fatalf("connection rows = %d, want 1", connRepo.Count())
	}
	if connRepo.missOnce {
		t.Fatal("conflict branch was not taken")
	}
}

func TestSendRequestIdempotent(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")

	first, _ := svc.SendRequest("U1", "U2")
	again, err := svc.SendRequest("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != relationship_enum.PENDING || again.ConnectionId != first.ConnectionId {
		t.Fatal("repeated request must be a no-op returning the pending row")
	}
	if connRepo.Count() != 1 {
		t.Fatalf("connection rows = %d, want 1", connRepo.Count())
	}

	// 已通过后再申请同样幂等
	_, _ = svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: first.ConnectionId, Action: "accept"})
	rsp, err := svc.SendRequest("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.ACCEPTED {
		t.Fatalf("status = %s, want accepted", rsp.Status)
	}
}

func TestRespondAccept(t *testing.T) {
	svc, _ := newTestService("U1", "U2", "U3")
	pending, _ := svc.SendRequest("U1", "U2")

	// 发起方不能替对方接受
	_, err := svc.Respond("U1", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "accept"})
	if errorx.GetCode(err) != errorx.CodeInvalidState {
		t.Fatalf("initiator accept: code = %d, want CodeInvalidState", errorx.GetCode(err))
	}

	// 第三方无权操作
	_, err = svc.Respond("U3", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "accept"})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider accept: code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	// 不存在的记录
	_, err = svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: "C404", Action: "accept"})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("missing row: code = %d, want CodeNotFound", errorx.GetCode(err))
	}

	// 接收方接受
	rsp, err := svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "accept"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.ACCEPTED {
		t.Fatalf("status = %s, want accepted", rsp.Status)
	}

	// 已通过后再 accept 属于非法状态
	_, err = svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "accept"})
	if errorx.GetCode(err) != errorx.CodeInvalidState {
		t.Fatalf("double accept: code = %d, want CodeInvalidState", errorx.GetCode(err))
	}
}

// 拒绝删除整行，之后可以重新发起全新申请
func TestDeclineAllowsFreshRequest(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")
	pending, _ := svc.SendRequest("U1", "U2")

	rsp, err := svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "decline"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.NONE {
		t.Fatalf("status = %s, want none", rsp.Status)
	}
	if connRepo.Count() != 0 {
		t.Fatal("decline must delete the row")
	}

	fresh, err := svc.SendRequest("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Status != relationship_enum.PENDING {
		t.Fatalf("fresh status = %s, want pending", fresh.Status)
	}
	if fresh.ConnectionId == pending.ConnectionId {
		t.Fatal("fresh request must create a new row, not resurrect the old one")
	}
}

// 拉黑后双方都无法再发起申请，直到 remove 清除记录
func TestBlockedPairUntilRemove(t *testing.T) {
	svc, _ := newTestService("U1", "U2")
	pending, _ := svc.SendRequest("U1", "U2")

	rsp, err := svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: pending.ConnectionId, Action: "block"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != relationship_enum.BLOCKED {
		t.Fatalf("status = %s, want blocked", rsp.Status)
	}

	if _, err := svc.SendRequest("U1", "U2"); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("initiator side: code = %d, want CodeForbidden", errorx.GetCode(err))
	}
	if _, err := svc.SendRequest("U2", "U1"); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("target side: code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	removed, err := svc.Remove("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if !removed.Removed {
		t.Fatal("remove on a blocked pair must report removed=true")
	}

	if _, err := svc.SendRequest("U2", "U1"); err != nil {
		t.Fatalf("after remove a fresh request must succeed: %v", err)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	svc, _ := newTestService("U1", "U2")

	removed, err := svc.Remove("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if removed.Removed {
		t.Fatal("remove without a row must report removed=false")
	}
}

func TestListStatusFilter(t *testing.T) {
	svc, _ := newTestService("U1", "U2", "U3")
	p1, _ := svc.SendRequest("U1", "U2")
	_, _ = svc.Respond("U2", request.RespondConnectionRequest{ConnectionId: p1.ConnectionId, Action: "accept"})
	_, _ = svc.SendRequest("U1", "U3")

	accepted, err := svc.List("U1", "accepted")
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 1 || accepted[0].PeerId != "U2" {
		t.Fatalf("accepted filter returned %+v", accepted)
	}

	pending, err := svc.List("U1", "pending")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].PeerId != "U3" {
		t.Fatalf("pending filter returned %+v", pending)
	}

	if _, err := svc.List("U1", "bogus"); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("bogus filter: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

func TestSearchWithRelationship(t *testing.T) {
	svc, _ := newTestService("U1", "U2", "U3", "U4")
	// U1 -> U2 在途，U3 -> U1 在途，U4 无关系
	_, _ = svc.SendRequest("U1", "U2")
	_, _ = svc.SendRequest("U3", "U1")

	results, err := svc.SearchWithRelationship("U1", "同学")
	if err != nil {
		t.Fatal(err)
	}

	labels := make(map[string]string, len(results))
	for _, item := range results {
		labels[item.Uuid] = item.Relationship
	}
	if labels["U2"] != relationship_enum.PENDING {
		t.Fatalf("U2 label = %s, want pending", labels["U2"])
	}
	if labels["U3"] != relationship_enum.INCOMING {
		t.Fatalf("U3 label = %s, want incoming", labels["U3"])
	}
	if labels["U4"] != relationship_enum.NONE {
		t.Fatalf("U4 label = %s, want none", labels["U4"])
	}
	if _, ok := labels["U1"]; ok {
		t.Fatal("search must exclude the caller")
	}
}

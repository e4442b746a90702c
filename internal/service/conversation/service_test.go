package conversation

import (
	"strings"
	"testing"
	"time"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/model"
	"campus_link_server/internal/testfakes"
	"campus_link_server/pkg/errorx"

	"gorm.io/gorm"
)

func newTestService(userIds ...string) (*conversationService, *testfakes.MessageRepo) {
	userRepo := testfakes.NewUserRepo()
	msgRepo := testfakes.NewMessageRepo()
	for _, id := range userIds {
		_ = userRepo.Create(&model.UserInfo{Uuid: id, Nickname: "同学" + id, Telephone: "138000000" + id[1:]})
	}
	repos := repository.NewRepositoriesFrom(userRepo, nil, testfakes.NewConversationRepo(), msgRepo, nil)
	return NewConversationService(repos, testfakes.NewCache()), msgRepo
}

func TestOpenCanonicalPair(t *testing.T) {
	svc, _ := newTestService("U1", "U2")

	first, err := svc.Open("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if first.PeerId != "U2" {
		t.Fatalf("peer = %s, want U2", first.PeerId)
	}

	// 反向打开命中同一会话
	second, err := svc.Open("U2", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if second.ConversationId != first.ConversationId {
		t.Fatalf("conversation ids differ: %s vs %s", first.ConversationId, second.ConversationId)
	}
	if second.PeerId != "U1" {
		t.Fatalf("peer = %s, want U1", second.PeerId)
	}
}

func TestOpenInvalid(t *testing.T) {
	svc, _ := newTestService("U1")

	if _, err := svc.Open("U1", "U1"); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("self open: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
	if _, err := svc.Open("U1", "U9"); errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("unknown peer: code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}

// 按固定毫秒时间轴预置消息，驱动分页游标
func seedMessages(t *testing.T, msgRepo *testfakes.MessageRepo, convId string, count int) time.Time {
	t.Helper()
	base := time.UnixMilli(1700000000000)
	for i := 1; i <= count; i++ {
		send, recv := "U1", "U2"
		if i%2 == 0 {
			send, recv = "U2", "U1"
		}
		err := msgRepo.Create(&model.Message{
			Uuid:           int64(i),
			ConversationId: convId,
			SendId:         send,
			ReceiveId:      recv,
			Content:        "消息" + strings.Repeat("!", i),
			Model:          gorm.Model{CreatedAt: base.Add(time.Duration(i) * time.Second)},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestGetMessagesPagination(t *testing.T) {
	svc, msgRepo := newTestService("U1", "U2")
	conv, _ := svc.Open("U1", "U2")
	seedMessages(t, msgRepo, conv.ConversationId, 5)

	// 第一页：最新两条，升序返回
	page1, err := svc.GetMessages("U1", request.GetMessageListRequest{ConversationId: conv.ConversationId, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page1.Messages) != 2 || !page1.HasMore {
		t.Fatalf("page1 = %d msgs hasMore=%v, want 2/true", len(page1.Messages), page1.HasMore)
	}
	if page1.Messages[0].MessageId != 4 || page1.Messages[1].MessageId != 5 {
		t.Fatalf("page1 ids = %d,%d, want 4,5", page1.Messages[0].MessageId, page1.Messages[1].MessageId)
	}

	// 第二页：游标之前的两条
	page2, err := svc.GetMessages("U1", request.GetMessageListRequest{
		ConversationId: conv.ConversationId, Cursor: page1.NextCursor, Limit: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.Messages) != 2 || !page2.HasMore {
		t.Fatalf("page2 = %d msgs hasMore=%v, want 2/true", len(page2.Messages), page2.HasMore)
	}
	if page2.Messages[0].MessageId != 2 || page2.Messages[1].MessageId != 3 {
		t.Fatalf("page2 ids = %d,%d, want 2,3", page2.Messages[0].MessageId, page2.Messages[1].MessageId)
	}

	// 最后一页：剩一条，游标归零
	page3, err := svc.GetMessages("U1", request.GetMessageListRequest{
		ConversationId: conv.ConversationId, Cursor: page2.NextCursor, Limit: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page3.Messages) != 1 || page3.HasMore || page3.NextCursor != 0 {
		t.Fatalf("page3 = %d msgs hasMore=%v cursor=%d, want 1/false/0",
			len(page3.Messages), page3.HasMore, page3.NextCursor)
	}
	if page3.Messages[0].MessageId != 1 {
		t.Fatalf("page3 id = %d, want 1", page3.Messages[0].MessageId)
	}
}

// 同一毫秒写入的消息按雪花 uuid 次级排序，分页顺序保持稳定
func TestGetMessagesSameTimestampOrder(t *testing.T) {
	svc, msgRepo := newTestService("U1", "U2")
	conv, _ := svc.Open("U1", "U2")
	base := time.UnixMilli(1700000000000)
	stamps := []time.Time{
		base.Add(1 * time.Second),
		base.Add(2 * time.Second),
		base.Add(2 * time.Second), // 与上一条同毫秒
		base.Add(3 * time.Second),
	}
	for i, at := range stamps {
		err := msgRepo.Create(&model.Message{
			Uuid:           int64(i + 1),
			ConversationId: conv.ConversationId,
			SendId:         "U1",
			ReceiveId:      "U2",
			Content:        "消息",
			Model:          gorm.Model{CreatedAt: at},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.GetMessages("U1", request.GetMessageListRequest{ConversationId: conv.ConversationId, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Messages) != 3 || !page.HasMore {
		t.Fatalf("page = %d msgs hasMore=%v, want 3/true", len(page.Messages), page.HasMore)
	}
	for i, want := range []int64{2, 3, 4} {
		if page.Messages[i].MessageId != want {
			t.Fatalf("message[%d] = %d, want %d", i, page.Messages[i].MessageId, want)
		}
	}
}

func TestGetMessagesAccess(t *testing.T) {
	svc, _ := newTestService("U1", "U2", "U3")
	conv, _ := svc.Open("U1", "U2")

	_, err := svc.GetMessages("U3", request.GetMessageListRequest{ConversationId: conv.ConversationId})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider: code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	_, err = svc.GetMessages("U1", request.GetMessageListRequest{ConversationId: "S404"})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("missing conversation: code = %d, want CodeNotFound", errorx.GetCode(err))
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newTestService("U1", "U2")

	if _, err := svc.SendMessage("U1", request.SendMessageRequest{PeerId: "U1", Content: "hi"}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("self send: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
	long := strings.Repeat("长", 1001)
	if _, err := svc.SendMessage("U1", request.SendMessageRequest{PeerId: "U2", Content: long}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("oversized content: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

// 发消息自动补齐会话，双方会话列表统计一致
func TestSendMessageAndUnread(t *testing.T) {
	svc, _ := newTestService("U1", "U2")

	first, err := svc.SendMessage("U1", request.SendMessageRequest{PeerId: "U2", Content: "中午一起吃饭吗"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.SendMessage("U1", request.SendMessageRequest{PeerId: "U2", Content: "就在食堂门口等你"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ConversationId != second.ConversationId {
		t.Fatal("messages to the same peer must share one conversation")
	}

	// 接收方未读 2，发送方未读 0
	list, err := svc.ListConversations("U2")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].UnreadCount != 2 {
		t.Fatalf("receiver list = %+v, want one conversation with unread 2", list)
	}
	if list[0].LastMessage != "就在食堂门口等你" {
		t.Fatalf("last message = %s", list[0].LastMessage)
	}

	list, err = svc.ListConversations("U1")
	if err != nil {
		t.Fatal(err)
	}
	if list[0].UnreadCount != 0 {
		t.Fatalf("sender unread = %d, want 0", list[0].UnreadCount)
	}

	// 标记已读后归零，重复调用幂等
	if err := svc.MarkRead("U2", first.ConversationId); err != nil {
		t.Fatal(err)
	}
	list, _ = svc.ListConversations("U2")
	if list[0].UnreadCount != 0 {
		t.Fatalf("unread after markRead = %d, want 0", list[0].UnreadCount)
	}
	if err := svc.MarkRead("U2", first.ConversationId); err != nil {
		t.Fatal(err)
	}
	list, _ = svc.ListConversations("U2")
	if list[0].UnreadCount != 0 {
		t.Fatalf("unread after repeated markRead = %d, want 0", list[0].UnreadCount)
	}
}

func TestDeleteMessage(t *testing.T) {
	svc, msgRepo := newTestService("U1", "U2", "U3")
	sent, err := svc.SendMessage("U1", request.SendMessageRequest{PeerId: "U2", Content: "撤回这条"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.DeleteMessage("U3", sent.MessageId); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider delete: code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	rsp, err := svc.DeleteMessage("U2", sent.MessageId)
	if err != nil {
		t.Fatal(err)
	}
	if rsp.ConversationId != sent.ConversationId {
		t.Fatalf("conversation id = %s, want %s", rsp.ConversationId, sent.ConversationId)
	}

	// 软删除后分页不可见
	page, err := svc.GetMessages("U1", request.GetMessageListRequest{ConversationId: sent.ConversationId})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Messages) != 0 {
		t.Fatalf("deleted message still visible: %+v", page.Messages)
	}

	// 物理行保留，审计口径仍可见且带删除时间
	raw, err := msgRepo.FindByUuidUnscoped(sent.MessageId)
	if err != nil {
		t.Fatal(err)
	}
	if !raw.DeletedAt.Valid {
		t.Fatal("audit lookup must expose the deletion timestamp")
	}

	// 再次删除视为不存在
	if _, err := svc.DeleteMessage("U2", sent.MessageId); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("double delete: code = %d, want CodeNotFound", errorx.GetCode(err))
	}
}

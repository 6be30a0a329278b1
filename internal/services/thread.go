package services

import (
	"log"

	"moyuan/internal/models"
)

// AssembleThread 把一条评论下的扁平回复列表组装成可展示的会话：
// 对每条带 reply_to_id 的回复，在同批回复里查出被回复的原文填进
// RepliedContent，用于界面上的引用展示。
//
// 不修改入参，返回带注解的副本；回复保持原有时间正序。
//
// 容错规则（数据完整性异常只记日志，绝不让整个评论串渲染失败）：
//   - reply_to_id 悬空（目标已被删除）：引用留空，但写入时冗余的
//     reply_to 昵称保留，"回复了某某"依然可读；
//   - reply_to_id 指向自己：按"回复楼主"处理，清掉自引用。
func AssembleThread(comment models.Comment) models.Comment {
	if len(comment.Replies) == 0 {
		return comment
	}

	byID := make(map[string]int, len(comment.Replies))
	for i, reply := range comment.Replies {
		byID[reply.ID] = i
	}

	annotated := make([]models.Reply, len(comment.Replies))
	copy(annotated, comment.Replies)

	for i := range annotated {
		reply := &annotated[i]
		if reply.ReplyToID == "" {
			continue
		}
		if reply.ReplyToID == reply.ID {
			log.Printf("评论 %s 的回复 %s 自引用，按回复楼主处理", comment.ID, reply.ID)
			reply.ReplyToID = ""
			reply.ReplyTo = ""
			continue
		}
		target, ok := byID[reply.ReplyToID]
		if !ok {
			// 目标回复已被删除，昵称靠写入时的冗余字段存活
			log.Printf("评论 %s 的回复 %s 引用了不存在的回复 %s", comment.ID, reply.ID, reply.ReplyToID)
			continue
		}
		reply.RepliedContent = comment.Replies[target].Content
	}

	comment.Replies = annotated
	return comment
}

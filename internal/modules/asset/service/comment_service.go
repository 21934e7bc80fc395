package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/asset/dto"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
)

const maxCommentLength = 2000

func (s *Service) ListComments(ctx context.Context, versionID uint) ([]dto.CommentResponse, error) {
	comments, err := s.assetStore.ListComments(ctx, versionID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(&c))
	}
	return out, nil
}

func (s *Service) AddComment(ctx context.Context, user auth.CurrentUser, versionID uint, text string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformservice.NewFieldError("text", "评论内容不能为空")
	}
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, platformservice.NewFieldError("text", "评论内容过长")
	}
	if _, err := s.assetStore.FindVersion(ctx, versionID); err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("版本不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}

	comment := &model.Comment{VersionID: versionID, UserID: user.ID, Text: text}
	if err := s.assetStore.CreateComment(ctx, comment); err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	resp := toCommentResponse(comment)
	resp.Username = user.Username
	return &resp, nil
}

// DeleteComment 只有作者本人可以删除评论。
func (s *Service) DeleteComment(ctx context.Context, user auth.CurrentUser, commentID uint) error {
	comment, err := s.assetStore.FindComment(ctx, commentID)
	if err != nil {
		if store.IsNotFound(err) {
			return platformservice.NewNotFoundError("评论不存在")
		}
		return platformservice.WrapInternal(err)
	}
	if comment.UserID != user.ID {
		return platformservice.NewForbiddenError("只能删除自己的评论")
	}
	if err := s.assetStore.DeleteComment(ctx, commentID); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

func toCommentResponse(c *model.Comment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:        c.ID,
		VersionID: c.VersionID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if u, ok := store.One[model.User](c.User); ok {
		resp.Username = u.Username
	}
	return resp
}

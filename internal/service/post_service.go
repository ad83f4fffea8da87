package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
)

// PostService 课程讨论帖与评论业务接口
type PostService interface {
	// ListByCourse 按创建时间倒序返回课程帖子
	ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.PostResponse, error)
	Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.PostResponse, error)
	Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.PostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, p policy.Principal, id int64, req *dto.PostRequest) (*dto.PostResponse, error)
	// Delete 同时删除帖子下的全部评论
	Delete(ctx context.Context, p policy.Principal, id int64) error

	// ListComments 按创建时间正序返回帖子评论
	ListComments(ctx context.Context, p policy.Principal, postID int64) ([]dto.CommentResponse, error)
	AddComment(ctx context.Context, p policy.Principal, postID int64, req *dto.CommentRequest) (*dto.CommentResponse, error)
	// DeleteComment 评论作者或课程授课教师可删除
	DeleteComment(ctx context.Context, p policy.Principal, commentID int64) error
}

type postService struct {
	access
}

// NewPostService 创建 PostService 实例
func NewPostService(repo *repository.Repository, logger *zap.Logger) PostService {
	return &postService{access: access{repo: repo, logger: logger}}
}

// ────────────────────── 帖子 ──────────────────────

func (s *postService) ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.PostResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	list, err := s.repo.Post.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出帖子失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PostResponse, 0, len(list))
	for i := range list {
		result = append(result, toPostResponse(&list[i]))
	}
	return result, nil
}

func (s *postService) Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.PostResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrPostNotFound, "查询帖子失败", zap.Int64("post_id", id))
	}
	if post.CourseID != courseID {
		return nil, ErrPostNotFound
	}

	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentWrite, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	post := &model.Post{CourseID: courseID, Body: req.Body}
	if err := s.repo.Post.Create(ctx, post); err != nil {
		s.logger.Error("创建帖子失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Update(ctx context.Context, p policy.Principal, id int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	post, _, err := s.post(ctx, p, policy.ActionContentWrite, id)
	if err != nil {
		return nil, err
	}

	post.Body = req.Body
	if err := s.repo.Post.Update(ctx, post); err != nil {
		s.logger.Error("更新帖子失败", zap.Int64("post_id", id), zap.Error(err))
		return nil, err
	}

	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return err
	}
	if _, _, err := s.post(ctx, p, policy.ActionContentWrite, id); err != nil {
		return err
	}

	if err := s.repo.Post.Delete(ctx, id); err != nil {
		s.logger.Error("删除帖子失败", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 评论 ──────────────────────

func (s *postService) ListComments(ctx context.Context, p policy.Principal, postID int64) ([]dto.CommentResponse, error) {
	if err := gate(p, policy.ActionCommentList); err != nil {
		return nil, err
	}
	if _, _, err := s.post(ctx, p, policy.ActionCommentList, postID); err != nil {
		return nil, err
	}

	list, err := s.repo.Comment.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("列出评论失败", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(list))
	for i := range list {
		result = append(result, toCommentResponse(&list[i]))
	}
	return result, nil
}

func (s *postService) AddComment(ctx context.Context, p policy.Principal, postID int64, req *dto.CommentRequest) (*dto.CommentResponse, error) {
	if err := gate(p, policy.ActionCommentCreate); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if _, _, err := s.post(ctx, p, policy.ActionCommentCreate, postID); err != nil {
		return nil, err
	}

	c := &model.Comment{PostID: postID, UserID: p.UserID, Body: req.Body}
	if err := s.repo.Comment.Create(ctx, c); err != nil {
		s.logger.Error("创建评论失败", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	resp := toCommentResponse(c)
	return &resp, nil
}

func (s *postService) DeleteComment(ctx context.Context, p policy.Principal, commentID int64) error {
	if err := gate(p, policy.ActionCommentDelete); err != nil {
		return err
	}

	c, err := s.repo.Comment.GetByID(ctx, commentID)
	if err != nil {
		return s.notFoundOr(err, ErrCommentNotFound, "查询评论失败", zap.Int64("comment_id", commentID))
	}
	post, err := s.repo.Post.GetByID(ctx, c.PostID)
	if err != nil {
		return s.notFoundOr(err, ErrCommentNotFound, "查询帖子失败", zap.Int64("post_id", c.PostID))
	}
	_, courseRel, err := s.course(ctx, p, post.CourseID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	rel := courseRel.Merge(policy.ResolveParty(p, c.UserID))
	if err := authorize(p, policy.ActionCommentDelete, rel, ErrCommentNotFound); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		s.logger.Error("删除评论失败", zap.Int64("comment_id", commentID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// post 加载帖子并按 action 校验调用者与所属课程的关系；无权访问时返回 ErrPostNotFound
func (s *postService) post(ctx context.Context, p policy.Principal, action policy.Action, id int64) (*model.Post, policy.Relationship, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		return nil, policy.Relationship{}, s.notFoundOr(err, ErrPostNotFound, "查询帖子失败", zap.Int64("post_id", id))
	}
	_, rel, err := s.authorizeCourse(ctx, p, action, post.CourseID, ErrPostNotFound)
	if err != nil {
		return nil, rel, err
	}
	return post, rel, nil
}

func toPostResponse(post *model.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        post.ID,
		CourseID:  post.CourseID,
		Body:      post.Body,
		CreatedAt: formatTime(post.CreatedAt),
		UpdatedAt: formatTime(post.UpdatedAt),
	}
}

func toCommentResponse(c *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

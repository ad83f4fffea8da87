package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
)

// ── 内存存储 ──
// 所有 mock Repository 共享同一份数据，以便模拟级联删除与跨表查询

type memStore struct {
	nextID int64
	now    time.Time
	tick   time.Duration // 每次写入推进的时钟；为 0 时所有记录时间戳相同

	users         map[int64]*model.User
	courses       map[int64]*model.Course
	enrollments   map[[2]int64]bool // {course_id, student_id}
	announcements map[int64]*model.Announcement
	assignments   map[int64]*model.Assignment
	submissions   map[int64]*model.Submission
	posts         map[int64]*model.Post
	comments      map[int64]*model.Comment
	messages      map[int64]*model.Message

	// raceSubmission 为 true 时模拟并发：预检查看不到已有提交，写入时命中唯一约束
	raceSubmission bool
	// raceEnrollment 为 true 时选课名单查询看不到已有选课关系
	raceEnrollment bool
	// storeErr 非空时所有写操作返回该错误
	storeErr error
}

func newMemStore() *memStore {
	return &memStore{
		now:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		tick:          time.Second,
		users:         make(map[int64]*model.User),
		courses:       make(map[int64]*model.Course),
		enrollments:   make(map[[2]int64]bool),
		announcements: make(map[int64]*model.Announcement),
		assignments:   make(map[int64]*model.Assignment),
		submissions:   make(map[int64]*model.Submission),
		posts:         make(map[int64]*model.Post),
		comments:      make(map[int64]*model.Comment),
		messages:      make(map[int64]*model.Message),
	}
}

func (s *memStore) stamp(b *model.BaseModel) int64 {
	s.nextID++
	s.now = s.now.Add(s.tick)
	b.CreatedAt = s.now
	b.UpdatedAt = s.now
	return s.nextID
}

func (s *memStore) touch(b *model.BaseModel) {
	s.now = s.now.Add(s.tick)
	b.UpdatedAt = s.now
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:         memUserRepo{s},
		Course:       memCourseRepo{s},
		Announcement: memAnnouncementRepo{s},
		Assignment:   memAssignmentRepo{s},
		Submission:   memSubmissionRepo{s},
		Post:         memPostRepo{s},
		Comment:      memCommentRepo{s},
		Message:      memMessageRepo{s},
	}
}

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, what)
}

func newer(a, b model.BaseModel, idA, idB int64) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return idA > idB
}

func older(a, b model.BaseModel, idA, idB int64) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return idA < idB
}

// ── Mock UserRepository ──

type memUserRepo struct{ s *memStore }

func (m memUserRepo) Create(_ context.Context, u *model.User) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	for _, existing := range m.s.users {
		if existing.Email == u.Email {
			return duplicate("uq_users_email")
		}
	}
	u.ID = m.s.stamp(&u.BaseModel)
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}

func (m memUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m memUserRepo) ListByIDs(_ context.Context, ids []int64) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.s.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──

type memCourseRepo struct{ s *memStore }

func (m memCourseRepo) Create(_ context.Context, c *model.Course) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	c.ID = m.s.stamp(&c.BaseModel)
	cp := *c
	m.s.courses[c.ID] = &cp
	return nil
}

func (m memCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memCourseRepo) list(keep func(c *model.Course) bool) []model.Course {
	var result []model.Course
	for _, c := range m.s.courses {
		if keep(c) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result
}

func (m memCourseRepo) List(_ context.Context) ([]model.Course, error) {
	return m.list(func(*model.Course) bool { return true }), nil
}

func (m memCourseRepo) ListByTeacher(_ context.Context, teacherID int64) ([]model.Course, error) {
	return m.list(func(c *model.Course) bool { return c.TeacherID == teacherID }), nil
}

func (m memCourseRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Course, error) {
	return m.list(func(c *model.Course) bool { return m.s.enrollments[[2]int64{c.ID, studentID}] }), nil
}

func (m memCourseRepo) Update(_ context.Context, c *model.Course) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	m.s.touch(&c.BaseModel)
	cp := *c
	m.s.courses[c.ID] = &cp
	return nil
}

func (m memCourseRepo) Delete(_ context.Context, id int64) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	for aid, a := range m.s.assignments {
		if a.CourseID == id {
			memAssignmentRepo(m).cascade(aid)
		}
	}
	for pid, p := range m.s.posts {
		if p.CourseID == id {
			memPostRepo(m).cascade(pid)
		}
	}
	for aid, a := range m.s.announcements {
		if a.CourseID == id {
			delete(m.s.announcements, aid)
		}
	}
	for key := range m.s.enrollments {
		if key[0] == id {
			delete(m.s.enrollments, key)
		}
	}
	delete(m.s.courses, id)
	return nil
}

func (m memCourseRepo) StudentIDs(_ context.Context, courseID int64) ([]int64, error) {
	var ids []int64
	if m.s.raceEnrollment {
		return ids, nil
	}
	for key := range m.s.enrollments {
		if key[0] == courseID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (m memCourseRepo) AddStudent(_ context.Context, courseID, studentID int64) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	key := [2]int64{courseID, studentID}
	if m.s.enrollments[key] {
		return duplicate("enrollments_pkey")
	}
	m.s.enrollments[key] = true
	return nil
}

// ── Mock AnnouncementRepository ──

type memAnnouncementRepo struct{ s *memStore }

func (m memAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	a.ID = m.s.stamp(&a.BaseModel)
	cp := *a
	m.s.announcements[a.ID] = &cp
	return nil
}

func (m memAnnouncementRepo) GetByID(_ context.Context, id int64) (*model.Announcement, error) {
	if a, ok := m.s.announcements[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memAnnouncementRepo) ListByCourse(_ context.Context, courseID int64) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.s.announcements {
		if a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result, nil
}

func (m memAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.s.touch(&a.BaseModel)
	cp := *a
	m.s.announcements[a.ID] = &cp
	return nil
}

func (m memAnnouncementRepo) Delete(_ context.Context, id int64) error {
	delete(m.s.announcements, id)
	return nil
}

// ── Mock AssignmentRepository ──

type memAssignmentRepo struct{ s *memStore }

func (m memAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	a.ID = m.s.stamp(&a.BaseModel)
	cp := *a
	m.s.assignments[a.ID] = &cp
	return nil
}

func (m memAssignmentRepo) GetByID(_ context.Context, id int64) (*model.Assignment, error) {
	if a, ok := m.s.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memAssignmentRepo) ListByCourse(_ context.Context, courseID int64) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.s.assignments {
		if a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result, nil
}

func (m memAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	m.s.touch(&a.BaseModel)
	cp := *a
	m.s.assignments[a.ID] = &cp
	return nil
}

func (m memAssignmentRepo) Delete(_ context.Context, id int64) error {
	m.cascade(id)
	return nil
}

func (m memAssignmentRepo) cascade(id int64) {
	for sid, sub := range m.s.submissions {
		if sub.AssignmentID == id {
			delete(m.s.submissions, sid)
		}
	}
	delete(m.s.assignments, id)
}

// ── Mock SubmissionRepository ──

type memSubmissionRepo struct{ s *memStore }

func (m memSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	for _, existing := range m.s.submissions {
		if existing.UserID == sub.UserID && existing.AssignmentID == sub.AssignmentID {
			return duplicate("uq_submissions_user_assignment")
		}
	}
	sub.ID = m.s.stamp(&sub.BaseModel)
	cp := *sub
	m.s.submissions[sub.ID] = &cp
	return nil
}

func (m memSubmissionRepo) GetByID(_ context.Context, id int64) (*model.Submission, error) {
	if sub, ok := m.s.submissions[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memSubmissionRepo) GetByUserAndAssignment(_ context.Context, userID, assignmentID int64) (*model.Submission, error) {
	if m.s.raceSubmission {
		return nil, gorm.ErrRecordNotFound
	}
	for _, sub := range m.s.submissions {
		if sub.UserID == userID && sub.AssignmentID == assignmentID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memSubmissionRepo) list(keep func(sub *model.Submission) bool) []model.Submission {
	var result []model.Submission
	for _, sub := range m.s.submissions {
		if keep(sub) {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return older(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result
}

func (m memSubmissionRepo) ListByAssignment(_ context.Context, assignmentID int64) ([]model.Submission, error) {
	return m.list(func(sub *model.Submission) bool { return sub.AssignmentID == assignmentID }), nil
}

func (m memSubmissionRepo) ListByUser(_ context.Context, userID int64) ([]model.Submission, error) {
	return m.list(func(sub *model.Submission) bool { return sub.UserID == userID }), nil
}

func (m memSubmissionRepo) ListByTeacher(_ context.Context, teacherID int64) ([]model.Submission, error) {
	return m.list(func(sub *model.Submission) bool {
		a, ok := m.s.assignments[sub.AssignmentID]
		if !ok {
			return false
		}
		c, ok := m.s.courses[a.CourseID]
		return ok && c.TeacherID == teacherID
	}), nil
}

// ── Mock PostRepository ──

type memPostRepo struct{ s *memStore }

func (m memPostRepo) Create(_ context.Context, p *model.Post) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	p.ID = m.s.stamp(&p.BaseModel)
	cp := *p
	m.s.posts[p.ID] = &cp
	return nil
}

func (m memPostRepo) GetByID(_ context.Context, id int64) (*model.Post, error) {
	if p, ok := m.s.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memPostRepo) ListByCourse(_ context.Context, courseID int64) ([]model.Post, error) {
	var result []model.Post
	for _, p := range m.s.posts {
		if p.CourseID == courseID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result, nil
}

func (m memPostRepo) Update(_ context.Context, p *model.Post) error {
	m.s.touch(&p.BaseModel)
	cp := *p
	m.s.posts[p.ID] = &cp
	return nil
}

func (m memPostRepo) Delete(_ context.Context, id int64) error {
	m.cascade(id)
	return nil
}

func (m memPostRepo) cascade(id int64) {
	for cid, c := range m.s.comments {
		if c.PostID == id {
			delete(m.s.comments, cid)
		}
	}
	delete(m.s.posts, id)
}

// ── Mock CommentRepository ──

type memCommentRepo struct{ s *memStore }

func (m memCommentRepo) Create(_ context.Context, c *model.Comment) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	c.ID = m.s.stamp(&c.BaseModel)
	cp := *c
	m.s.comments[c.ID] = &cp
	return nil
}

func (m memCommentRepo) GetByID(_ context.Context, id int64) (*model.Comment, error) {
	if c, ok := m.s.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memCommentRepo) ListByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.s.comments {
		if c.PostID == postID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return older(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result, nil
}

func (m memCommentRepo) Delete(_ context.Context, id int64) error {
	delete(m.s.comments, id)
	return nil
}

// ── Mock MessageRepository ──

type memMessageRepo struct{ s *memStore }

func (m memMessageRepo) Create(_ context.Context, msg *model.Message) error {
	if m.s.storeErr != nil {
		return m.s.storeErr
	}
	msg.ID = m.s.stamp(&msg.BaseModel)
	cp := *msg
	m.s.messages[msg.ID] = &cp
	return nil
}

func (m memMessageRepo) ListConversation(_ context.Context, userA, userB int64) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.s.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) || (msg.SenderID == userB && msg.ReceiverID == userA) {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return older(result[i].BaseModel, result[j].BaseModel, result[i].ID, result[j].ID)
	})
	return result, nil
}

// ── Mock Publisher ──

type publishedEvent struct {
	key     string
	payload interface{}
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	r.events = append(r.events, publishedEvent{key: routingKey, payload: payload})
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

// ── Mock TokenBlacklist ──

type memBlacklist struct {
	entries map[string]time.Duration
}

func (b *memBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if b.entries == nil {
		b.entries = make(map[string]time.Duration)
	}
	b.entries[jti] = ttl
	return nil
}

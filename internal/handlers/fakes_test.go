package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/Akshatagarwal19/InstagramCloneBackend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakePostRepo is an in-memory PostRepository keyed by ObjectID hex
type fakePostRepo struct {
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (r *fakePostRepo) add(post models.Post) string {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	id := post.ID.Hex()
	r.posts[id] = &post
	return id
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	copied := *post
	r.posts[post.ID.Hex()] = &copied
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) GetPosts(_ context.Context, skip, limit int64) ([]models.Post, int64, error) {
	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })

	total := int64(len(posts))
	if skip >= total {
		return []models.Post{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return posts[skip:end], total, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, post *models.Post) error {
	if _, ok := r.posts[post.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	copied := *post
	r.posts[post.ID.Hex()] = &copied
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repositories.ErrInvalidID
	}
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) IncrementLikes(_ context.Context, id string) (int, error) {
	p, ok := r.posts[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	p.LikesCount++
	return p.LikesCount, nil
}

func (r *fakePostRepo) DecrementLikes(_ context.Context, id string) (int, error) {
	p, ok := r.posts[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if p.LikesCount > 0 {
		p.LikesCount--
	}
	return p.LikesCount, nil
}

func (r *fakePostRepo) IncrementComments(_ context.Context, id string) error {
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.CommentsCount++
	return nil
}

// fakeLikeRepo is an in-memory LikeRepository
type fakeLikeRepo struct {
	edges map[string]bool
	// forceDuplicate makes the next CreateLike report a lost insert race
	forceDuplicate bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{edges: map[string]bool{}}
}

func likeKey(postID string, userID uint) string {
	return fmt.Sprintf("%s|%d", postID, userID)
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	if r.forceDuplicate {
		r.forceDuplicate = false
		return repositories.ErrDuplicate
	}
	key := likeKey(like.PostID, like.UserID)
	if r.edges[key] {
		return repositories.ErrDuplicate
	}
	r.edges[key] = true
	return nil
}

func (r *fakeLikeRepo) DeleteLike(postID string, userID uint) error {
	key := likeKey(postID, userID)
	if !r.edges[key] {
		return repositories.ErrNotFound
	}
	delete(r.edges, key)
	return nil
}

func (r *fakeLikeRepo) HasUserLikedPost(postID string, userID uint) (bool, error) {
	return r.edges[likeKey(postID, userID)], nil
}

func (r *fakeLikeRepo) CountByPostID(postID string) (int64, error) {
	var count int64
	for key := range r.edges {
		if len(key) > len(postID) && key[:len(postID)] == postID {
			count++
		}
	}
	return count, nil
}

// fakeFollowRepo is an in-memory FollowRepository. It resolves edge users
// from a fakeUserRepo so listings carry real public fields.
type fakeFollowRepo struct {
	edges  []models.Follow
	users  *fakeUserRepo
	nextID uint
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, nextID: 1}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	for _, e := range r.edges {
		if e.FollowerID == follow.FollowerID && e.FollowingID == follow.FollowingID {
			return repositories.ErrDuplicate
		}
	}
	follow.ID = r.nextID
	r.nextID++
	follow.CreatedAt = time.Now()
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) edgeFor(follow models.Follow, userID uint) models.FollowEdge {
	edge := models.FollowEdge{ID: follow.ID, CreatedAt: follow.CreatedAt}
	if u, err := r.users.GetUserByID(userID); err == nil {
		edge.User = models.PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return edge
}

func (r *fakeFollowRepo) GetFollowers(userID uint) ([]models.FollowEdge, error) {
	edges := []models.FollowEdge{}
	for _, e := range r.edges {
		if e.FollowingID == userID {
			edges = append(edges, r.edgeFor(e, e.FollowerID))
		}
	}
	return edges, nil
}

func (r *fakeFollowRepo) GetFollowing(userID uint) ([]models.FollowEdge, error) {
	edges := []models.FollowEdge{}
	for _, e := range r.edges {
		if e.FollowerID == userID {
			edges = append(edges, r.edgeFor(e, e.FollowingID))
		}
	}
	return edges, nil
}

// fakeCommentRepo is an in-memory CommentRepository. Author names resolve
// from a fakeUserRepo.
type fakeCommentRepo struct {
	comments []models.Comment
	users    *fakeUserRepo
	nextID   uint
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{users: users, nextID: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.CommentWithAuthor, error) {
	out := []models.CommentWithAuthor{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		c := r.comments[i]
		if c.PostID != postID {
			continue
		}
		withAuthor := models.CommentWithAuthor{
			ID:        c.ID,
			PostID:    c.PostID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if u, err := r.users.GetUserByID(c.UserID); err == nil {
			withAuthor.AuthorName = u.Name
		}
		out = append(out, withAuthor)
	}
	return out, nil
}

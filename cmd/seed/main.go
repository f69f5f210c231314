package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wayandway/moneylog-backend/internal/config"
	"github.com/wayandway/moneylog-backend/internal/db"
	"github.com/wayandway/moneylog-backend/internal/logger"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
	"github.com/wayandway/moneylog-backend/internal/service"
)

type seedUser struct {
	Domain   string
	Name     string
	Email    string
	Password string
}

type seedPost struct {
	AuthorDomain string
	Title        string
	Content      string
	Tags         []string
	IsPrivate    bool
}

var seedUsers = []seedUser{
	{Domain: "wayand", Name: "김지훈", Email: "wayand@example.com", Password: "password123"},
	{Domain: "mirae", Name: "박미래", Email: "mirae@example.com", Password: "password123"},
}

// Posts are created through the post service so slugs and tags take the
// normal allocation path. The duplicate titles are intentional; they come
// out suffixed -1, -2 and so on.
var seedPosts = []seedPost{
	{AuthorDomain: "wayand", Title: "머니로그를 시작하며", Content: "첫 글입니다.", Tags: []string{"일상", "회고"}},
	{AuthorDomain: "wayand", Title: "Hello World", Content: "Hello from MoneyLog.", Tags: []string{"go"}},
	{AuthorDomain: "mirae", Title: "Hello World", Content: "Another hello.", Tags: []string{"go", "blog"}},
	{AuthorDomain: "mirae", Title: "비공개 메모", Content: "초안입니다.", Tags: []string{"메모"}, IsPrivate: true},
}

func main() {
	cfg := config.Load()

	log, flush := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	defer flush()

	log.Info("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	tagService := service.NewTagService(tagRepo)
	postService := service.NewPostService(postRepo, userRepo, tagService, log)

	ctx := context.Background()

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		user, err := ensureUser(ctx, userRepo, su)
		if err != nil {
			log.Fatal("seed user", zap.String("domain", su.Domain), zap.Error(err))
		}
		users[su.Domain] = user
	}

	created := 0
	for _, sp := range seedPosts {
		author := users[sp.AuthorDomain]
		post, err := postService.Create(ctx, service.CreatePostInput{
			Title:     sp.Title,
			Content:   sp.Content,
			Tags:      sp.Tags,
			IsPrivate: sp.IsPrivate,
		}, author.ID)
		if err != nil {
			log.Fatal("seed post", zap.String("title", sp.Title), zap.Error(err))
		}
		created++
		log.Info("post created", zap.String("title", post.Title), zap.Stringp("slug", post.Slug))
	}

	log.Info("seed completed", zap.Int("users", len(users)), zap.Int("posts", created))
}

// ensureUser creates the user if the email is not registered yet.
func ensureUser(ctx context.Context, repo repository.UserRepository, su seedUser) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, su.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Domain:       su.Domain,
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

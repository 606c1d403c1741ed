package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nitwit45/todo-demo/internal/database"
	"github.com/nitwit45/todo-demo/pkg/crypto"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/mailer"
	"github.com/nitwit45/todo-demo/pkg/token"
	"github.com/nitwit45/todo-demo/pkg/uploadfiles"
)

type Server struct {
	port int

	db       database.Service
	mailer   mailer.Mailer
	tokens   *token.Manager
	secrets  *crypto.SecretCipher
	uploader *uploadfiles.Uploader
}

const (
	FROM_EMAIL = "contact@taskflow.app"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		RefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
	})
	if err != nil {
		logger.Error("Failed to initialize token manager", err)
		os.Exit(1)
	}

	secrets, err := crypto.NewSecretCipher(os.Getenv("ENCRYPTION_KEY"))
	if err != nil {
		logger.Error("Failed to initialize secret cipher", err)
		os.Exit(1)
	}

	uploader, err := uploadfiles.NewUploader(uploadfiles.Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("S3_BUCKET_NAME"),
		Region:          os.Getenv("S3_REGION"),
	})
	if err != nil {
		logger.Warn("Avatar storage not configured, uploads disabled", "error", err.Error())
	}

	srv := &Server{
		port:     port,
		db:       database.New(),
		mailer:   mailer.NewResendMailer(os.Getenv("RESEND_API_KEY"), FROM_EMAIL),
		tokens:   tokens,
		secrets:  secrets,
		uploader: uploader,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	PostKeyPrefix  = "post:%d"
	BoardKeyPrefix = "board:%d"
	BoardListKey   = "boards:all"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	BoardTTL     = 10 * time.Minute
	BoardListTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func BoardKey(boardID uint) string {
	return fmt.Sprintf(BoardKeyPrefix, boardID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateBoards(ctx context.Context) {
	Invalidate(ctx, BoardListKey)
}

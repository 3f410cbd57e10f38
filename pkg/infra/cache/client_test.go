package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestClient_GetMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewClientFromRedis(rdb)

	mock.ExpectGet("policy:abc").RedisNil()

	_, err := c.Get(context.Background(), "policy:abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_JSONRoundTrip(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewClientFromRedis(rdb)
	ctx := context.Background()

	mock.ExpectSet("k", `{"name":"a","count":2}`, time.Minute).SetVal("OK")
	require.NoError(t, c.SetJSON(ctx, "k", cachedValue{Name: "a", Count: 2}, time.Minute))

	mock.ExpectGet("k").SetVal(`{"name":"a","count":2}`)
	var out cachedValue
	require.NoError(t, c.GetJSON(ctx, "k", &out))
	assert.Equal(t, cachedValue{Name: "a", Count: 2}, out)

	mock.ExpectGet("bad").SetVal(`not json`)
	assert.Error(t, c.GetJSON(ctx, "bad", &out))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_DeleteAndErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewClientFromRedis(rdb)
	ctx := context.Background()

	mock.ExpectDel("a", "b").SetVal(2)
	require.NoError(t, c.Delete(ctx, "a", "b"))
	require.NoError(t, c.Delete(ctx))

	mock.ExpectGet("down").SetErr(errors.New("connection refused"))
	_, err := c.Get(ctx, "down")
	assert.EqualError(t, err, "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_DeleteMatchingWalksCursor(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewClientFromRedis(rdb)
	ctx := context.Background()

	mock.ExpectScan(0, "policy:loc:*", 100).SetVal([]string{"policy:loc:a", "policy:loc:b"}, 7)
	mock.ExpectDel("policy:loc:a", "policy:loc:b").SetVal(2)
	mock.ExpectScan(7, "policy:loc:*", 100).SetVal([]string{}, 0)

	require.NoError(t, c.DeleteMatching(ctx, "policy:loc:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_DeleteMatchingScanError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewClientFromRedis(rdb)

	mock.ExpectScan(0, "policy:loc:*", 100).SetErr(errors.New("connection refused"))

	err := c.DeleteMatching(context.Background(), "policy:loc:*")
	assert.EqualError(t, err, "failed to scan policy:loc:*: connection refused")
}

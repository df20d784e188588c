package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/halu23489/genba/internal/config"
	"github.com/halu23489/genba/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStores_Memory(t *testing.T) {
	st, err := openStores(context.Background(), config.StoreConfig{Driver: config.StoreMemory})
	require.NoError(t, err)
	defer st.close()

	assert.IsType(t, &repository.MemoryProjectRepository{}, st.projects)
	assert.IsType(t, &repository.MemoryCycleTimeRepository{}, st.cycleTimes)
	assert.IsType(t, &repository.MemoryWorkMasterRepository{}, st.workMasters)
	assert.NoError(t, st.db.Ping(context.Background()))
}

func TestOpenStores_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	st, err := openStores(context.Background(), config.StoreConfig{Driver: config.StoreRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer st.close()

	assert.IsType(t, &repository.RedisProjectRepository{}, st.projects)
	assert.IsType(t, &repository.RedisCycleTimeRepository{}, st.cycleTimes)
	assert.IsType(t, &repository.RedisWorkMasterRepository{}, st.workMasters)
	assert.NoError(t, st.db.Ping(context.Background()))
}

func TestOpenStores_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := openStores(context.Background(), config.StoreConfig{Driver: config.StoreRedis, RedisAddr: addr})
	assert.Error(t, err)
}

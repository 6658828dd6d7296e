package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// RandomSource 可注入的随机数服务
//
// 波次构成的洗牌和出生点角度都从这里取随机数；
// 测试传入固定种子即可复现完全相同的刷怪序列。
// 非并发安全，每个游戏会话持有独立实例。
type RandomSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomSource 使用指定种子创建随机数服务
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewRandomSourceFromEntropy 使用 crypto/rand 生成的种子创建随机数服务
// seed 非 0 时直接使用该种子
func NewRandomSourceFromEntropy(seed int64) (*RandomSource, error) {
	if seed != 0 {
		return NewRandomSource(seed), nil
	}
	s, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewRandomSource(s), nil
}

// NewSeed 使用 crypto/rand 生成随机种子
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seed 返回创建时使用的种子（用于日志与复现）
func (r *RandomSource) Seed() int64 {
	return r.seed
}

// Intn 返回 [0, n) 范围内的随机整数
func (r *RandomSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float64 返回 [0.0, 1.0) 范围内的随机浮点数
func (r *RandomSource) Float64() float64 {
	return r.rng.Float64()
}

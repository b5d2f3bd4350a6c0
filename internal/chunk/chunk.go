package chunk

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	// ErrInvalidWorkers は worker 数が1未満の場合のエラー
	ErrInvalidWorkers = errors.New("number of workers must be at least 1")
	// ErrNegativeSize は配列サイズが負の場合のエラー
	ErrNegativeSize = errors.New("array size must be non-negative")
)

// Chunk は1つのワーカーに割り当てる連続インデックス範囲 [Start, End)
type Chunk struct {
	Index int
	Start int
	End   int
	Size  int
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk-%d[%d,%d)", c.Index, c.Start, c.End)
}

// At は index 番目のチャンクを返す
func At(arraySize, numWorkers, index int) (Chunk, error) {
	if numWorkers < 1 {
		return Chunk{}, ErrInvalidWorkers
	}
	if arraySize < 0 {
		return Chunk{}, ErrNegativeSize
	}
	if index < 0 || index >= numWorkers {
		return Chunk{}, fmt.Errorf("chunk index %d out of range [0,%d)", index, numWorkers)
	}

	base := arraySize / numWorkers
	start := base * index
	end := base * (index + 1)
	if index == numWorkers-1 {
		end = arraySize
	}
	return Chunk{
		Index: index,
		Start: start,
		End:   end,
		Size:  end - start,
	}, nil
}

// Split は arraySize を numWorkers 個のチャンクに分割する
func Split(arraySize, numWorkers int) ([]Chunk, error) {
	if numWorkers < 1 {
		return nil, ErrInvalidWorkers
	}
	if arraySize < 0 {
		return nil, ErrNegativeSize
	}

	chunks := make([]Chunk, numWorkers)
	for i := range numWorkers {
		c, err := At(arraySize, numWorkers, i)
		if err != nil {
			return nil, err
		}
		chunks[i] = c
	}
	return chunks, nil
}

// Total はチャンクサイズの合計を返す
func Total(chunks []Chunk) int {
	return lo.SumBy(chunks, func(c Chunk) int { return c.Size })
}

package ga

import (
	"sort"

	"qapSearch/internal/qap"
)

// Replacer формирует следующее поколение из текущего и потомков.
// Размер результата всегда равен размеру текущего поколения; все решения
// обоих срезов должны быть оценены.
type Replacer interface {
	Replace(curr, offspring []*qap.Solution) []*qap.Solution
}

// sortByFitness возвращает индексы решений по возрастанию приспособленности.
func sortByFitness(members []*qap.Solution) []int {
	idxs := make([]int, len(members))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(i, j int) bool {
		return members[idxs[i]].MustFitness() < members[idxs[j]].MustFitness()
	})
	return idxs
}

// GenerationalElitist переносит Elite лучших решений текущего поколения без
// изменений, остальные места занимают лучшие потомки. При нехватке потомков
// оставшиеся места заполняются следующими по качеству текущими решениями.
type GenerationalElitist struct {
	Elite int
}

func (g GenerationalElitist) Replace(curr, offspring []*qap.Solution) []*qap.Solution {
	size := len(curr)
	next := make([]*qap.Solution, 0, size)

	currIdx := sortByFitness(curr)
	elite := g.Elite
	if elite > size {
		elite = size
	}
	for _, idx := range currIdx[:elite] {
		next = append(next, curr[idx])
	}

	for _, idx := range sortByFitness(offspring) {
		if len(next) == size {
			return next
		}
		next = append(next, offspring[idx])
	}
	for _, idx := range currIdx[elite:] {
		if len(next) == size {
			break
		}
		next = append(next, curr[idx])
	}
	return next
}

// SteadyState вытесняет худшие текущие решения потомками: объединённый пул
// сортируется по приспособленности и лучшие size решений образуют следующее
// поколение.
type SteadyState struct{}

func (SteadyState) Replace(curr, offspring []*qap.Solution) []*qap.Solution {
	size := len(curr)
	merged := make([]*qap.Solution, 0, size+len(offspring))
	merged = append(merged, curr...)
	merged = append(merged, offspring...)

	next := make([]*qap.Solution, 0, size)
	for _, idx := range sortByFitness(merged)[:size] {
		next = append(next, merged[idx])
	}
	return next
}

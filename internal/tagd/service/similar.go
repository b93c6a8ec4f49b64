package service

import (
	"context"
	"sort"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/pkg/apierror"
	"github.com/rs/zerolog"
)

// SimilarOptions 相似实体查询的可选过滤条件
//
// SameType 限定只比较同类型实体；OfficialOnly、Author、Language
// 限定参与比较的标签范围，目标实体和候选实体使用同一套过滤条件
type SimilarOptions struct {
	SameType     bool
	OfficialOnly bool
	Author       any
	Language     any
}

// SimilarObjects 按词干集合的相似度查找与目标实体相似的其他实体
//
// 距离是两个实体词干集合的对称差大小：
//
//	distance = |S ∪ S0| - |S ∩ S0|
//
// 完全没有共同词干的实体不算相似，不会出现在结果里。
// 结果按距离升序排列，距离相同的按 (类型, ID) 排序保证输出稳定。
func (s *TagService) SimilarObjects(ctx context.Context, ref any, opts SimilarOptions) ([]entity.SimilarObject, error) {
	logger := zerolog.Ctx(ctx)

	target, err := s.types.Resolve(ref)
	if err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(ctx, "", opts.Language, opts.Author, opts.OfficialOnly)
	if err != nil {
		return nil, err
	}
	if opts.SameType {
		filter.EntityType = target.Type
	}

	// 一次批量读出范围内的全部标签，在内存里聚合词干集合。
	// 词干表是全量数据的压缩表示，标签行数通常远小于实体数 × 词干数
	tags, err := s.tagRepo.Scan(ctx, filter)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to scan tags", err)
	}

	stemSets := make(map[entity.Ref]map[string]struct{})
	for _, tag := range tags {
		if tag.StemID == "" {
			continue
		}
		key := entity.Ref{Type: tag.EntityType, ID: tag.EntityID}
		set, ok := stemSets[key]
		if !ok {
			set = make(map[string]struct{})
			stemSets[key] = set
		}
		set[tag.StemID] = struct{}{}
	}

	targetSet := stemSets[target]
	if len(targetSet) == 0 {
		// 目标实体在过滤范围内没有任何词干，没有可比较的对象
		return nil, nil
	}

	similar := make([]entity.SimilarObject, 0, len(stemSets)-1)
	for other, set := range stemSets {
		if other == target {
			continue
		}
		shared := 0
		for stemID := range set {
			if _, ok := targetSet[stemID]; ok {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		distance := len(targetSet) + len(set) - 2*shared
		similar = append(similar, entity.SimilarObject{Entity: other, Distance: distance})
	}

	sort.Slice(similar, func(i, j int) bool {
		if similar[i].Distance != similar[j].Distance {
			return similar[i].Distance < similar[j].Distance
		}
		return similar[i].Entity.Less(similar[j].Entity)
	})

	logger.Debug().
		Str("entity", target.String()).
		Int("candidates", len(stemSets)-1).
		Int("similar", len(similar)).
		Msg("Similarity ranking computed")

	return similar, nil
}

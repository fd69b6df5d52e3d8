package services

// 有序集合的位置维护：同一作用域内 position 恒为 {0..n-1} 的稠密序列。
// 本文件给出纯函数的平移计划，执行由仓储在单个事务内完成。

// ShiftPlan 描述一次区间平移：[Lo, Hi] 内的所有 position 加 Delta。
type ShiftPlan struct {
	Lo    int32
	Hi    int32
	Delta int32
}

// PlanReposition 计算把条目从 oldPos 移到 newPos 所需的平移。
// newPos == oldPos 时返回 ok=false，调用方应拒绝该请求。
//
//	newPos > oldPos：(oldPos, newPos] 区间整体 -1
//	newPos < oldPos：[newPos, oldPos) 区间整体 +1
func PlanReposition(oldPos, newPos int32) (plan ShiftPlan, ok bool) {
	switch {
	case newPos == oldPos:
		return ShiftPlan{}, false
	case newPos > oldPos:
		return ShiftPlan{Lo: oldPos + 1, Hi: newPos, Delta: -1}, true
	default:
		return ShiftPlan{Lo: newPos, Hi: oldPos - 1, Delta: +1}, true
	}
}

// PlanRemoval 计算删除 position=removed 的条目后尾部的平移：
// (removed, ∞) 区间整体 -1。Hi 取作用域当前最大可能位置。
func PlanRemoval(removed, count int32) ShiftPlan {
	return ShiftPlan{Lo: removed + 1, Hi: count - 1, Delta: -1}
}

// ValidateTarget 校验重定位目标：必须落在 [0, count-1] 且已有占位者。
// 越界返回 ErrPositionNotFound；与当前位置相同返回 ErrSamePosition。
func ValidateTarget(oldPos, newPos, count int32) error {
	if newPos < 0 || newPos >= count {
		return ErrPositionNotFound
	}
	if newPos == oldPos {
		return ErrSamePosition
	}
	return nil
}

package service

type idSet map[uint]struct{}

func newIDSet(ids []uint) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) has(id uint) bool {
	_, ok := s[id]
	return ok
}

// Viewer is the requesting identity together with the membership sets
// needed to personalise one page of results. The zero value is anonymous.
type Viewer struct {
	ID        *uint
	Favorites idSet
	Cart      idSet
	Following idSet
}

func (v Viewer) anonymous() bool {
	return v.ID == nil
}

func (v Viewer) Follows(userID uint) bool {
	return !v.anonymous() && v.Following.has(userID)
}

func (v Viewer) Favorited(recipeID uint) bool {
	return !v.anonymous() && v.Favorites.has(recipeID)
}

func (v Viewer) InCart(recipeID uint) bool {
	return !v.anonymous() && v.Cart.has(recipeID)
}

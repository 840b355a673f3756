package domain

import (
	"errors"
)

var (
	MessageSuccessGetFavorites   = "success get favorites"
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"

	MessageFailedGetFavorites   = "failed to get favorites"
	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"

	ErrDuplicateFavorite = errors.New("recipe already in favorites")
)

package repository

import (
	"gorm.io/gorm"

	"refood/internal/model"
)

// CategoriaRepository backs the optional category feature. Callers must gate
// every call on infra.SchemaCapabilities.HasCategorie — the tables may not
// exist and these queries would fail hard.
type CategoriaRepository interface {
	EnsureTx(tx *gorm.DB, nomi []string) ([]model.Categoria, error)
	ReplaceAssociazioniTx(tx *gorm.DB, lotto *model.Lotto, categorie []model.Categoria) error
	DeleteAssociazioniTx(tx *gorm.DB, lotto *model.Lotto) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

// EnsureTx resolves category names to rows, creating the missing ones.
func (r *categoriaRepo) EnsureTx(tx *gorm.DB, nomi []string) ([]model.Categoria, error) {
	categorie := make([]model.Categoria, 0, len(nomi))
	for _, nome := range nomi {
		var c model.Categoria
		err := tx.Where("nome = ?", nome).First(&c).Error
		if err == gorm.ErrRecordNotFound {
			c = model.Categoria{Nome: nome}
			err = tx.Create(&c).Error
		}
		if err != nil {
			return nil, err
		}
		categorie = append(categorie, c)
	}
	return categorie, nil
}

func (r *categoriaRepo) ReplaceAssociazioniTx(tx *gorm.DB, lotto *model.Lotto, categorie []model.Categoria) error {
	if err := r.DeleteAssociazioniTx(tx, lotto); err != nil {
		return err
	}
	for _, c := range categorie {
		link := model.LottoCategoria{LottoID: lotto.ID, CategoriaID: c.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *categoriaRepo) DeleteAssociazioniTx(tx *gorm.DB, lotto *model.Lotto) error {
	return tx.Delete(&model.LottoCategoria{}, "lotto_id = ?", lotto.ID).Error
}

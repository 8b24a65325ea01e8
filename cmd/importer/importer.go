package importer

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database/migrations"
)

// Importer loads a legacy JSON trade export into the database. The
// server does the same on boot; this command exists for re-running an
// import against an explicit file.
type Importer struct {
	Log  *logrus.Entry
	DB   *gorm.DB
	Path string
}

func (i *Importer) Start() error {
	i.Log.WithField("path", i.Path).Info("Importing legacy trade journal")

	if err := migrations.ImportLegacyJSON(i.DB, i.Path); err != nil {
		i.Log.WithError(err).Error("Legacy import failed")
		return err
	}

	i.Log.Info("Legacy import finished")
	return nil
}

package sqlite

import (
	"time"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// Los modelos replican las tablas de la base en línea para que ambos almacenes
// guarden los mismos datos.

type companyModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:200;not null;index"`
	TaxID     string `gorm:"column:cnpj;size:20"`
	Region    string `gorm:"size:100"`
	Contact   string `gorm:"size:200"`
	Phone     string `gorm:"size:30"`
	Email     string `gorm:"size:200"`
	Active    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (companyModel) TableName() string { return "empresas" }

type equipmentModel struct {
	ID            string     `gorm:"primaryKey;size:36"`
	SerialNumber  string     `gorm:"column:numero_serie;size:100;not null;uniqueIndex"`
	Type          string     `gorm:"column:tipo;size:100;not null"`
	Model         string     `gorm:"column:modelo;size:100"`
	CompanyID     string     `gorm:"column:empresa_id;size:36;not null;index"`
	EntryDate     time.Time  `gorm:"column:data_entrada"`
	ExitDate      *time.Time `gorm:"column:data_saida"`
	Status        string     `gorm:"size:40;not null;index"`
	Region        string     `gorm:"column:regiao;size:100"`
	InMaintenance bool       `gorm:"column:em_manutencao;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (equipmentModel) TableName() string { return "equipamentos" }

type movementModel struct {
	ID                   string    `gorm:"primaryKey;size:36"`
	EquipmentID          string    `gorm:"column:equipamento_id;size:36;not null;index"`
	Type                 string    `gorm:"column:tipo_movimentacao;size:40;not null;index"`
	MovementDate         time.Time `gorm:"column:data_movimentacao;not null;index"`
	OriginCompanyID      string    `gorm:"column:empresa_origem_id;size:36"`
	DestinationCompanyID string    `gorm:"column:empresa_destino_id;size:36"`
	ResponsibleUser      string    `gorm:"column:responsavel;size:200"`
	Notes                string    `gorm:"column:observacoes;type:text"`
	DefectReportedID     string    `gorm:"column:defeito_reclamado_id;size:36"`
	DefectFoundID        string    `gorm:"column:defeito_encontrado_id;size:36"`
	MaintenanceTypeID    string    `gorm:"column:tipo_manutencao_id;size:36"`
	CreatedAt            time.Time
}

func (movementModel) TableName() string { return "movimentacoes" }

type defectTypeModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Code        string `gorm:"column:codigo;size:20;not null;uniqueIndex"`
	Description string `gorm:"column:descricao;size:200"`
	Category    string `gorm:"column:categoria;size:20;not null"`
	Active      bool   `gorm:"column:ativo;not null"`
	CreatedAt   time.Time
}

func (defectTypeModel) TableName() string { return "tipos_manutencao" }

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	CompanyID    string `gorm:"size:36;not null;index"`
	Email        string `gorm:"size:200;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	Name         string `gorm:"size:200"`
	Role         string `gorm:"size:20;not null"`
	Status       string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

// Todas las fechas se guardan en UTC para que las comparaciones de texto de SQLite sean cronológicas.

func toCompanyModel(c *entity.Company) companyModel {
	return companyModel{
		ID: c.ID, Name: c.Name, TaxID: c.TaxID, Region: c.Region, Contact: c.Contact,
		Phone: c.Phone, Email: c.Email, Active: c.Active,
		CreatedAt: c.CreatedAt.UTC(), UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (m companyModel) toEntity() *entity.Company {
	return &entity.Company{
		ID: m.ID, Name: m.Name, TaxID: m.TaxID, Region: m.Region, Contact: m.Contact,
		Phone: m.Phone, Email: m.Email, Active: m.Active,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toEquipmentModel(e *entity.Equipment) equipmentModel {
	m := equipmentModel{
		ID: e.ID, SerialNumber: e.SerialNumber, Type: e.Type, Model: e.Model,
		CompanyID: e.CompanyID, EntryDate: e.EntryDate.UTC(), Status: string(e.Status),
		Region: e.Region, InMaintenance: e.InMaintenance,
		CreatedAt: e.CreatedAt.UTC(), UpdatedAt: e.UpdatedAt.UTC(),
	}
	if e.ExitDate != nil {
		t := e.ExitDate.UTC()
		m.ExitDate = &t
	}
	return m
}

func (m equipmentModel) toEntity() *entity.Equipment {
	return &entity.Equipment{
		ID: m.ID, SerialNumber: m.SerialNumber, Type: m.Type, Model: m.Model,
		CompanyID: m.CompanyID, EntryDate: m.EntryDate, ExitDate: m.ExitDate,
		Status: entity.EquipmentStatus(m.Status), Region: m.Region, InMaintenance: m.InMaintenance,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toMovementModel(mv *entity.Movement) movementModel {
	return movementModel{
		ID: mv.ID, EquipmentID: mv.EquipmentID, Type: mv.Type, MovementDate: mv.MovementDate.UTC(),
		OriginCompanyID: mv.OriginCompanyID, DestinationCompanyID: mv.DestinationCompanyID,
		ResponsibleUser: mv.ResponsibleUser, Notes: mv.Notes,
		DefectReportedID: mv.DefectReportedID, DefectFoundID: mv.DefectFoundID,
		MaintenanceTypeID: mv.MaintenanceTypeID, CreatedAt: mv.CreatedAt.UTC(),
	}
}

func (m movementModel) toEntity() *entity.Movement {
	return &entity.Movement{
		ID: m.ID, EquipmentID: m.EquipmentID, Type: m.Type, MovementDate: m.MovementDate,
		OriginCompanyID: m.OriginCompanyID, DestinationCompanyID: m.DestinationCompanyID,
		ResponsibleUser: m.ResponsibleUser, Notes: m.Notes,
		DefectReportedID: m.DefectReportedID, DefectFoundID: m.DefectFoundID,
		MaintenanceTypeID: m.MaintenanceTypeID, CreatedAt: m.CreatedAt,
	}
}

func toDefectTypeModel(d *entity.DefectType) defectTypeModel {
	return defectTypeModel{
		ID: d.ID, Code: d.Code, Description: d.Description, Category: string(d.Category),
		Active: d.Active, CreatedAt: d.CreatedAt.UTC(),
	}
}

func (m defectTypeModel) toEntity() *entity.DefectType {
	return &entity.DefectType{
		ID: m.ID, Code: m.Code, Description: m.Description,
		Category: entity.DefectCategory(m.Category), Active: m.Active, CreatedAt: m.CreatedAt,
	}
}

func toUserModel(u *entity.User) userModel {
	return userModel{
		ID: u.ID, CompanyID: u.CompanyID, Email: u.Email, PasswordHash: u.PasswordHash,
		Name: u.Name, Role: u.Role, Status: u.Status,
		CreatedAt: u.CreatedAt.UTC(), UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() *entity.User {
	return &entity.User{
		ID: m.ID, CompanyID: m.CompanyID, Email: m.Email, PasswordHash: m.PasswordHash,
		Name: m.Name, Role: m.Role, Status: m.Status,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}
